package handler

// Aliases so the external handler_test package can decode responses.
type (
	LoginResp  = loginResp
	CreateResp = createResp
)
