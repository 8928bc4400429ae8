package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/accsetupsviewer/server/internal/domain"
	"github.com/accsetupsviewer/server/internal/service"
)

func (s *Server) registerProfileRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getNickname",
		Method:      http.MethodGet,
		Path:        "/api/v1/profile/nickname",
		Summary:     "Get nickname",
		Description: "Returns the user's nickname and whether it can still be changed",
		Tags:        []string{"Profile"},
		Security:    bearerSecurity,
	}, s.handleGetNickname)

	huma.Register(s.api, huma.Operation{
		OperationID: "setNickname",
		Method:      http.MethodPut,
		Path:        "/api/v1/profile/nickname",
		Summary:     "Set nickname",
		Description: "Chooses the public nickname. It can be set only once.",
		Tags:        []string{"Profile"},
		Security:    bearerSecurity,
	}, s.handleSetNickname)
}

// NicknameResponse is the nickname state of one user.
type NicknameResponse struct {
	Nickname string `json:"nickname" doc:"Public nickname, empty until chosen"`
	Locked   bool   `json:"locked" doc:"True once the nickname has been set"`
}

// NicknameOutput wraps the nickname for Huma.
type NicknameOutput struct {
	Body NicknameResponse
}

// SetNicknameRequest is the request body for choosing a nickname.
type SetNicknameRequest struct {
	Nickname string `json:"nickname" doc:"Public nickname"`
}

// SetNicknameInput wraps the nickname request for Huma.
type SetNicknameInput struct {
	Body SetNicknameRequest
}

func (s *Server) handleGetNickname(ctx context.Context, _ *struct{}) (*NicknameOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}
	profile, err := s.services.Profile.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &NicknameOutput{Body: mapNickname(profile)}, nil
}

func (s *Server) handleSetNickname(ctx context.Context, input *SetNicknameInput) (*NicknameOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}
	profile, err := s.services.Profile.SetNickname(ctx, userID, service.SetNicknameRequest{
		Nickname: input.Body.Nickname,
	})
	if err != nil {
		return nil, err
	}
	return &NicknameOutput{Body: mapNickname(profile)}, nil
}

func mapNickname(p *domain.Profile) NicknameResponse {
	return NicknameResponse{Nickname: p.Nickname, Locked: p.Locked()}
}
