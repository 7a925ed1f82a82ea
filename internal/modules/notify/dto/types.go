package dto

type TestOutput struct {
	Notifier string
	Granted  bool
}

type Message struct {
	Title string
	Body  string
}
