package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hugohenrick/go-chat/internal/domain/user"
)

// Erros específicos
var (
	ErrInvalidToken  = errors.New("token de sessão inválido")
	ErrExpiredToken  = errors.New("sessão expirada")
	ErrInvalidClaims = errors.New("claims inválidas")
	ErrMissingSecret = errors.New("chave secreta de sessão não configurada")
)

// CookieName é o nome do cookie que carrega o token de sessão
const CookieName = "session"

// Claims representa a identidade autenticada associada a uma sessão
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// Service emite e valida tokens de sessão assinados (JWT HS256)
type Service struct {
	secretKey  []byte
	expiration time.Duration
}

// NewService cria uma nova instância de Service
func NewService(secret string, expiration time.Duration) (*Service, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if expiration <= 0 {
		expiration = 24 * time.Hour
	}

	return &Service{
		secretKey:  []byte(secret),
		expiration: expiration,
	}, nil
}

// Expiration retorna a duração configurada da sessão
func (s *Service) Expiration() time.Duration {
	return s.expiration
}

// Issue gera um token de sessão para o usuário autenticado
func (s *Service) Issue(u *user.User) (string, error) {
	now := time.Now()

	claims := Claims{
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "go-chat",
			Subject:   u.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Validate valida um token de sessão e retorna as claims se for válido
func (s *Service) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Verificar o método de assinatura
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}

	return claims, nil
}
