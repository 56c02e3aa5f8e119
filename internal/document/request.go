package document

import (
	"encoding/json"

	"lettergen/internal/techrecord"
)

// Letter carries the letter metadata attached to a generation request.
type Letter struct {
	LetterType          LetterType  `json:"letterType"`
	LetterIssuer        string      `json:"letterIssuer"`
	LetterDateRequested string      `json:"letterDateRequested"`
	ParagraphID         ParagraphID `json:"paragraphId"`
}

// Request describes one document to generate. One request produces exactly
// one document model.
type Request struct {
	DocumentName          Name              `json:"documentName"`
	TechRecord            techrecord.Record `json:"techRecord"`
	RecipientEmailAddress string            `json:"recipientEmailAddress"`
	Letter                Letter            `json:"letter"`
}

// DecodeRequest parses a JSON queue payload into a Request.
func DecodeRequest(payload []byte) (Request, error) {
	var req Request
	if err := json.Unmarshal(payload, &req); err != nil {
		return Request{}, err
	}
	return req, nil
}

// EncodeRequest returns the JSON representation of a request.
func EncodeRequest(req Request) ([]byte, error) {
	return json.Marshal(req)
}
