package events

var CandidateIngestedTopic = "CandidateIngestedEvent"

type CandidateIngested struct {
	Rut      string
	Nombre   string
	Apellido string
	Updated  bool
	CvURL    string
}
