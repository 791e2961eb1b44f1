package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/require"

	"github.com/2beens/gymapi/internal/auth"
	"github.com/2beens/gymapi/internal/users"
	"github.com/2beens/gymapi/pkg"
)

const testPassword = "segredo123"

type account struct {
	ID    int
	Email string
	Token string
}

// do sends a JSON request (when body is not nil) and returns the response with its body read.
func (s *IntegrationTestSuite) do(method, path, token string, body any) (*http.Response, []byte) {
	t := s.T()

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, serverEndpoint+path, reqBody)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, respBytes
}

func (s *IntegrationTestSuite) decode(data []byte, v any) {
	require.NoError(s.T(), json.Unmarshal(data, v), string(data))
}

func (s *IntegrationTestSuite) login(email, password string) string {
	resp, body := s.do(http.MethodPost, "/auth/login", "", auth.Credentials{Email: email, Password: password})
	require.Equal(s.T(), http.StatusOK, resp.StatusCode, string(body))

	var loginResp auth.LoginResponse
	s.decode(body, &loginResp)
	require.NotEmpty(s.T(), loginResp.Token)
	return loginResp.Token
}

// registerAndLogin registers a fake user of the given role through the API.
func (s *IntegrationTestSuite) registerAndLogin(role users.Role) account {
	t := s.T()
	email := strings.ToLower(gofakeit.Email())
	req := users.RegisterRequest{
		Name:     gofakeit.Name(),
		Email:    email,
		Password: testPassword,
		Role:     role,
		WhatsApp: "+55119" + gofakeit.Numerify("########"),
	}
	switch role {
	case users.RoleTrainer:
		req.CREF = gofakeit.Numerify("######-G/SP")
	case users.RoleNutritionist:
		req.CRN = gofakeit.Numerify("CRN3-#####")
	}

	resp, body := s.do(http.MethodPost, "/auth/register", "", req)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var registerResp auth.RegisterResponse
	s.decode(body, &registerResp)
	require.Equal(t, role, registerResp.Role)

	return account{
		ID:    registerResp.ID,
		Email: email,
		Token: s.login(email, testPassword),
	}
}

// seedAdmin inserts an admin directly, admins cannot register through the API.
func (s *IntegrationTestSuite) seedAdmin() account {
	t := s.T()
	email := strings.ToLower(gofakeit.Email())
	hash, err := pkg.HashPassword(testPassword)
	require.NoError(t, err)

	var id int
	err = s.DB.QueryRow(
		`INSERT INTO users (name, email, password_hash, role) VALUES ($1, $2, $3, 'admin') RETURNING id`,
		gofakeit.Name(), email, hash,
	).Scan(&id)
	require.NoError(t, err)

	return account{ID: id, Email: email, Token: s.login(email, testPassword)}
}
