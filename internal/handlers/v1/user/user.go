package user

// CredentialsBody is the request body for register and login. Both fields
// are checked by the service so a missing one reads "Email and password required".
type CredentialsBody struct {
	Email    string `json:"email,omitempty" doc:"Account email"`
	Password string `json:"password,omitempty" doc:"Plain-text password"`
}

type CredentialsInput struct {
	Body CredentialsBody
}
