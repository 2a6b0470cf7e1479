package email

type Message struct {
	To      string
	Subject string
	HTML    string
}
