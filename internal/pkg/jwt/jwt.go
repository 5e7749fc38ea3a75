package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/metainnovalms-create/Meta-INNOVA-lms-sub002/internal/domain/auth"
)

const (
	TokenTypeAccess = "access"
	TokenTypeSSE    = "sse"
)

type Service interface {
	GenerateAccessToken(p auth.Principal) (token string, expiresAt int64, err error)
	GenerateSSEToken(userID, companyID string) (token string, expiresIn int, err error)
	// ValidateSSEToken returns the user and company an SSE token was issued for.
	ValidateSSEToken(tokenString string) (userID, companyID string, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) GenerateAccessToken(p auth.Principal) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"user_id":        p.UserID,
		"company_id":     p.CompanyID,
		"employee_id":    valueOrNil(p.EmployeeID),
		"institution_id": valueOrNil(p.InstitutionID),
		"role":           string(p.Role),
		"type":           TokenTypeAccess,
		"exp":            expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func valueOrNil(value *string) interface{} {
	if value == nil {
		return nil
	}
	return *value
}

// GenerateSSEToken generates a short-lived token for SSE connections
func (j *JWTService) GenerateSSEToken(userID, companyID string) (token string, expiresIn int, err error) {
	expiresIn = 300
	expiresAt := time.Now().Add(5 * time.Minute).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id":    userID,
		"company_id": companyID,
		"type":       TokenTypeSSE,
		"exp":        expiresAt,
	})
	if err != nil {
		return "", 0, err
	}

	return tokenString, expiresIn, nil
}

func (j *JWTService) ValidateSSEToken(tokenString string) (userID, companyID string, err error) {
	token, err := j.tokenAuth.Decode(tokenString)
	if err != nil {
		return "", "", err
	}

	if tokenType, ok := token.Get("type"); !ok || tokenType != TokenTypeSSE {
		return "", "", jwt.ErrInvalidJWT()
	}

	userIDVal, _ := token.Get("user_id")
	companyIDVal, _ := token.Get("company_id")
	userID, okUser := userIDVal.(string)
	companyID, okCompany := companyIDVal.(string)
	if !okUser || !okCompany || userID == "" || companyID == "" {
		return "", "", jwt.ErrInvalidJWT()
	}

	return userID, companyID, nil
}

// PrincipalFromClaims reads the tenant identity out of verified access token
// claims.
func PrincipalFromClaims(claims map[string]interface{}) (auth.Principal, error) {
	if tokenType, _ := claims["type"].(string); tokenType != TokenTypeAccess {
		return auth.Principal{}, auth.ErrInvalidToken
	}

	var p auth.Principal
	p.UserID, _ = claims["user_id"].(string)
	if p.UserID == "" {
		return auth.Principal{}, auth.ErrInvalidToken
	}
	p.CompanyID, _ = claims["company_id"].(string)
	if p.CompanyID == "" {
		return auth.Principal{}, auth.ErrCompanyIDRequired
	}

	role, _ := claims["role"].(string)
	p.Role = auth.Role(role)
	if !p.Role.IsValid() {
		return auth.Principal{}, auth.ErrInvalidToken
	}

	if v, ok := claims["employee_id"].(string); ok && v != "" {
		p.EmployeeID = &v
	}
	if v, ok := claims["institution_id"].(string); ok && v != "" {
		p.InstitutionID = &v
	}
	return p, nil
}
