package devserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Minahil-Hamza/taskdesk/internal/domain"
)

type tokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (s *Server) register(c echo.Context) error {
	var creds domain.Credentials
	if err := c.Bind(&creds); err != nil {
		return detail(c, http.StatusBadRequest, "invalid request body")
	}
	creds.Email = strings.TrimSpace(creds.Email)

	var errs []fieldErr
	if creds.Email == "" {
		errs = append(errs, fieldErr{Loc: []string{"body", "email"}, Msg: "field required"})
	}
	if len(creds.Password) < 8 {
		errs = append(errs, fieldErr{Loc: []string{"body", "password"}, Msg: "ensure this value has at least 8 characters"})
	}
	if len(errs) > 0 {
		return validationFailed(c, errs)
	}

	var existing userRecord
	if err := s.db.Where("email = ?", creds.Email).First(&existing).Error; err == nil {
		return detail(c, http.StatusBadRequest, "Email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return detail(c, http.StatusInternalServerError, "failed to hash password")
	}

	user := userRecord{
		ID:           uuid.NewString(),
		Email:        creds.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.db.Create(&user).Error; err != nil {
		return detail(c, http.StatusInternalServerError, "failed to create user")
	}

	return s.respondAuth(c, http.StatusCreated, user)
}

func (s *Server) login(c echo.Context) error {
	var creds domain.Credentials
	if err := c.Bind(&creds); err != nil {
		return detail(c, http.StatusBadRequest, "invalid request body")
	}

	var user userRecord
	if err := s.db.Where("email = ?", strings.TrimSpace(creds.Email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return detail(c, http.StatusUnauthorized, "Incorrect email or password")
		}
		return detail(c, http.StatusInternalServerError, "failed to look up user")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)) != nil {
		return detail(c, http.StatusUnauthorized, "Incorrect email or password")
	}

	return s.respondAuth(c, http.StatusOK, user)
}

func (s *Server) respondAuth(c echo.Context, code int, user userRecord) error {
	token, err := s.mintToken(user)
	if err != nil {
		return detail(c, http.StatusInternalServerError, "failed to generate token")
	}
	return c.JSON(code, domain.AuthResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        domain.User{ID: user.ID, Email: user.Email, CreatedAt: user.CreatedAt},
	})
}

func (s *Server) mintToken(user userRecord) (string, error) {
	claims := tokenClaims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.expiry)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// requireAuth guards session-scoped routes. Every failure mode here is a
// 401 so the client classifies it as a dead session.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			return detail(c, http.StatusUnauthorized, "Not authenticated")
		}

		claims := &tokenClaims{}
		token, err := jwt.ParseWithClaims(strings.TrimPrefix(header, "Bearer "), claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return s.secret, nil
		})
		if err != nil || !token.Valid || claims.Subject == "" {
			return detail(c, http.StatusUnauthorized, "Could not validate credentials")
		}

		c.Set("user_id", claims.Subject)
		return next(c)
	}
}

func currentUserID(c echo.Context) string {
	id, _ := c.Get("user_id").(string)
	return id
}
