package document

import (
	"errors"
	"reflect"
	"testing"

	"lettergen/internal/techrecord"
)

func trailerRequest() Request {
	return Request{
		DocumentName: NameTrailerIntoService,
		TechRecord: techrecord.Record{
			VehicleType:        techrecord.VehicleTypeTrailer,
			VIN:                "ABCDEFGH777777",
			TrailerID:          "C000001",
			ApprovalTypeNumber: "AT-9983",
			PlateSerialNumber:  "XYZ123",
		},
		RecipientEmailAddress: "customer@example.com",
		Letter: Letter{
			LetterType:          LetterTypeTrailerAcceptance,
			LetterIssuer:        "user",
			LetterDateRequested: "2023-02-23T12:34:56.789Z",
			ParagraphID:         Paragraph6,
		},
	}
}

func TestBuildTrailerIntoServiceMetadata(t *testing.T) {
	req := trailerRequest()
	model, err := Build(req)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	want := map[string]string{
		MetaDocumentType:       string(NameTrailerIntoService),
		MetaDateOfIssue:        "23/02/2023",
		MetaEmail:              "customer@example.com",
		MetaVIN:                "ABCDEFGH777777",
		MetaTrailerID:          "C000001",
		MetaApprovalTypeNumber: "AT-9983",
	}
	if !reflect.DeepEqual(model.MetaData, want) {
		t.Fatalf("metadata mismatch:\n got %v\nwant %v", model.MetaData, want)
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	req := trailerRequest()
	first, err := Build(req)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	second, err := Build(req)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("models differ:\n%+v\n%+v", first, second)
	}
}

func TestBuildRejectsUnsupportedName(t *testing.T) {
	req := trailerRequest()
	req.DocumentName = Name("plates-weekly-digest")

	_, err := Build(req)
	var unsupported UnsupportedNameError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedNameError, got %v", err)
	}
	if unsupported.Name != "plates-weekly-digest" {
		t.Fatalf("error carries name %q", unsupported.Name)
	}
}

func TestBuildRejectsInvalidDate(t *testing.T) {
	req := trailerRequest()
	req.Letter.LetterDateRequested = "23/02/2023"

	_, err := Build(req)
	var invalid InvalidDateError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidDateError, got %v", err)
	}
	if invalid.Value != "23/02/2023" {
		t.Fatalf("error carries value %q", invalid.Value)
	}
}

func TestBuildTRLKindsRequireTrailerID(t *testing.T) {
	for _, name := range []Name{NameMinistryTRL, NameTrailerIntoService} {
		req := trailerRequest()
		req.DocumentName = name
		req.TechRecord.TrailerID = ""

		_, err := Build(req)
		var missing techrecord.MissingFieldError
		if !errors.As(err, &missing) {
			t.Fatalf("%s: expected MissingFieldError, got %v", name, err)
		}
		if missing.Field != "trailerId" {
			t.Fatalf("%s: missing field = %q", name, missing.Field)
		}
	}
}

func TestBuildMinistryOmitsTrailerMetadata(t *testing.T) {
	req := trailerRequest()
	req.DocumentName = NameMinistry
	req.TechRecord.VehicleType = techrecord.VehicleTypeHGV
	req.TechRecord.TrailerID = ""

	model, err := Build(req)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, ok := model.MetaData[MetaTrailerID]; ok {
		t.Fatal("ministry document must not carry trailer-id metadata")
	}
	if model.MetaData[MetaDocumentType] != string(NameMinistry) {
		t.Fatalf("document-type = %q", model.MetaData[MetaDocumentType])
	}
}

func TestBuildDerivesFileName(t *testing.T) {
	model, err := Build(trailerRequest())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if model.FileName != "plate_XYZ123" {
		t.Fatalf("file name = %q, want plate_XYZ123", model.FileName)
	}
}

func TestBuildRejectsEmptyPlateSerial(t *testing.T) {
	req := trailerRequest()
	req.TechRecord.PlateSerialNumber = ""

	_, err := Build(req)
	if !errors.Is(err, ErrInvalidFileNameSource) {
		t.Fatalf("expected ErrInvalidFileNameSource, got %v", err)
	}
}

func TestRequestRoundTrip(t *testing.T) {
	req := trailerRequest()
	payload, err := EncodeRequest(req)
	if err != nil {
		t.Fatalf("encode request: %v", err)
	}
	got, err := DecodeRequest(payload)
	if err != nil {
		t.Fatalf("decode request: %v", err)
	}
	if !reflect.DeepEqual(got, req) {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, req)
	}
}
