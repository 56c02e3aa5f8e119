package document

import (
	"strconv"
	"time"

	"lettergen/internal/shared/util"
	"lettergen/internal/techrecord"
)

const issueDateLayout = "02/01/2006"

// Metadata keys shared by every document kind.
const (
	MetaDocumentType       = "document-type"
	MetaDateOfIssue        = "date-of-issue"
	MetaEmail              = "email"
	MetaVIN                = "vin"
	MetaTrailerID          = "trailer-id"
	MetaApprovalTypeNumber = "approval-type-number"
)

// Model is the renderer-ready representation of one document. It is built
// once per request and immutable afterwards; nothing persists it.
type Model struct {
	Name     Name
	Content  map[string]string
	MetaData map[string]string
	FileName string
}

// Build converts a request into the document model for its kind. It is pure:
// equal requests produce equal models, and all dates come from the request,
// never the wall clock.
func Build(req Request) (Model, error) {
	if !req.DocumentName.Supported() {
		return Model{}, UnsupportedNameError{Name: req.DocumentName}
	}

	issueDate, err := formatIssueDate(req.Letter.LetterDateRequested)
	if err != nil {
		return Model{}, err
	}

	common, err := req.TechRecord.Common()
	if err != nil {
		return Model{}, err
	}

	fileName, err := deriveFileName(common.PlateSerialNumber)
	if err != nil {
		return Model{}, err
	}

	switch req.DocumentName {
	case NameMinistry:
		return buildMinistry(req, common, issueDate, fileName)
	case NameMinistryTRL:
		return buildMinistryTRL(req, common, issueDate, fileName)
	case NameTrailerIntoService:
		return buildTrailerIntoService(req, common, issueDate, fileName)
	default:
		return Model{}, UnsupportedNameError{Name: req.DocumentName}
	}
}

func buildMinistry(req Request, common techrecord.Common, issueDate, fileName string) (Model, error) {
	return Model{
		Name:     NameMinistry,
		Content:  baseContent(req, common, issueDate),
		MetaData: baseMetaData(req, common, issueDate),
		FileName: fileName,
	}, nil
}

func buildMinistryTRL(req Request, common techrecord.Common, issueDate, fileName string) (Model, error) {
	trailerID, err := req.TechRecord.RequireTrailerID()
	if err != nil {
		return Model{}, err
	}

	content := baseContent(req, common, issueDate)
	content["trailerId"] = trailerID

	metaData := baseMetaData(req, common, issueDate)
	metaData[MetaTrailerID] = trailerID

	return Model{
		Name:     NameMinistryTRL,
		Content:  content,
		MetaData: metaData,
		FileName: fileName,
	}, nil
}

func buildTrailerIntoService(req Request, common techrecord.Common, issueDate, fileName string) (Model, error) {
	trailerID, err := req.TechRecord.RequireTrailerID()
	if err != nil {
		return Model{}, err
	}

	content := baseContent(req, common, issueDate)
	content["trailerId"] = trailerID
	content["paragraphId"] = strconv.Itoa(int(req.Letter.ParagraphID))

	metaData := baseMetaData(req, common, issueDate)
	metaData[MetaTrailerID] = trailerID

	return Model{
		Name:     NameTrailerIntoService,
		Content:  content,
		MetaData: metaData,
		FileName: fileName,
	}, nil
}

func baseContent(req Request, common techrecord.Common, issueDate string) map[string]string {
	return map[string]string{
		"vin":                 common.VIN,
		"approvalTypeNumber":  common.ApprovalTypeNumber,
		"letterType":          string(req.Letter.LetterType),
		"letterIssuer":        req.Letter.LetterIssuer,
		"letterDateRequested": req.Letter.LetterDateRequested,
		"issueDate":           issueDate,
	}
}

func baseMetaData(req Request, common techrecord.Common, issueDate string) map[string]string {
	return map[string]string{
		MetaDocumentType:       string(req.DocumentName),
		MetaDateOfIssue:        issueDate,
		MetaEmail:              req.RecipientEmailAddress,
		MetaVIN:                common.VIN,
		MetaApprovalTypeNumber: common.ApprovalTypeNumber,
	}
}

func formatIssueDate(raw string) (string, error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return "", InvalidDateError{Value: raw, Err: err}
	}
	return t.UTC().Format(issueDateLayout), nil
}

func deriveFileName(plateSerialNumber string) (string, error) {
	serial, err := util.SanitizeFileName(plateSerialNumber)
	if err != nil {
		return "", ErrInvalidFileNameSource
	}
	return "plate_" + serial, nil
}
