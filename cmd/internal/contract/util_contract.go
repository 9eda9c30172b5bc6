package contract

type WelcomeResponse struct {
	Message string `json:"message"`
}
