package document

// Name identifies a supported document kind. The set is closed: Build
// dispatches exhaustively over these values and rejects anything else.
type Name string

const (
	NameMinistry           Name = "ministry"
	NameMinistryTRL        Name = "ministry-trl"
	NameTrailerIntoService Name = "trailer-into-service"
)

// Supported reports whether the name is a known document kind.
func (n Name) Supported() bool {
	switch n {
	case NameMinistry, NameMinistryTRL, NameTrailerIntoService:
		return true
	default:
		return false
	}
}

// LetterType classifies the letter a request originates from.
type LetterType string

const (
	LetterTypeTrailerAcceptance LetterType = "trl-acceptance"
	LetterTypeTrailerRejection  LetterType = "trl-rejection"
)

// ParagraphID selects the statutory paragraph quoted in the letter body.
type ParagraphID int

const (
	Paragraph3 ParagraphID = 3
	Paragraph4 ParagraphID = 4
	Paragraph5 ParagraphID = 5
	Paragraph6 ParagraphID = 6
	Paragraph7 ParagraphID = 7
)
