package pipeline

// Response texts shared by every endpoint.
const (
	ServerError    = "Something went wrong on the server... please try again later."
	ItemsNotAvail  = "No items available."
	FeedbackThanks = "Thank you, we have received your feedback and will keep improving!"
	DIYThanks      = "DIY request successful! We will make your DIY guitar soon!"
)
