package response

import "tripdesk/internal/usecase"

type LoginResponse struct {
	AccessToken string               `json:"access_token"`
	Account     *usecase.AccountView `json:"account"`
}
