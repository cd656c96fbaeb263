package handlers

import (
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"hirebridge/models"
	"hirebridge/utils"
)

type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	Role        string `json:"role" binding:"required"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	CompanyName string `json:"company_name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	User    string `json:"user,omitempty"`
	Token   string `json:"token,omitempty"`
}

type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateJWT creates a JWT token for the user
func GenerateJWT(userID, email, role string) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "your-secret-key"
	}

	expirationHours, _ := strconv.Atoi(os.Getenv("JWT_EXPIRATION_HOURS"))
	if expirationHours == 0 {
		expirationHours = 24
	}

	claims := Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(expirationHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateJWT validates and extracts user information from JWT token
func ValidateJWT(tokenString string) (*Claims, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "your-secret-key"
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}

// AuthMiddleware validates JWT token and sets user context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			utils.UnauthorizedError(c, "Authorization header required")
			c.Abort()
			return
		}

		// Remove "Bearer " prefix if present
		if len(tokenString) > 7 && tokenString[:7] == "Bearer " {
			tokenString = tokenString[7:]
		}

		claims, err := ValidateJWT(tokenString)
		if err != nil {
			utils.UnauthorizedError(c, "Invalid or expired token")
			c.Abort()
			return
		}

		// Set user information in context
		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("user_role", claims.Role)
		c.Next()
	}
}

// RequireRole gates a route group to one account role. Runs after
// AuthMiddleware has populated the context.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("user_role")
		if !exists || userRole != role {
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// Register creates an account plus its pending candidate profile or
// pending company, depending on the requested role.
func Register(users *models.UserModel, candidates *models.CandidateModel, companies *models.CompanyModel) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, AuthResponse{
				Success: false,
				Message: "Invalid request data: " + err.Error(),
			})
			return
		}

		if req.Role != models.RoleCandidate && req.Role != models.RoleEmployer {
			c.JSON(http.StatusBadRequest, AuthResponse{
				Success: false,
				Message: "Role must be candidate or employer",
			})
			return
		}
		if req.Role == models.RoleCandidate && (req.FirstName == "" || req.LastName == "") {
			c.JSON(http.StatusBadRequest, AuthResponse{
				Success: false,
				Message: "Candidate registration requires first_name and last_name",
			})
			return
		}
		if req.Role == models.RoleEmployer && req.CompanyName == "" {
			c.JSON(http.StatusBadRequest, AuthResponse{
				Success: false,
				Message: "Employer registration requires company_name",
			})
			return
		}

		exists, err := users.EmailExists(req.Email)
		if err != nil {
			log.Printf("Database error during registration: %v", err)
			c.JSON(http.StatusInternalServerError, AuthResponse{
				Success: false,
				Message: "Failed to create account",
			})
			return
		}
		if exists {
			c.JSON(http.StatusConflict, AuthResponse{
				Success: false,
				Message: "User with this email already exists",
			})
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, AuthResponse{
				Success: false,
				Message: "Failed to hash password",
			})
			return
		}

		var userID string
		if req.Role == models.RoleCandidate {
			candidate, err := candidates.Register(req.Email, string(hashedPassword), req.FirstName, req.LastName)
			if err != nil {
				log.Printf("Database error during candidate registration: %v", err)
				c.JSON(http.StatusInternalServerError, AuthResponse{
					Success: false,
					Message: "Failed to create account",
				})
				return
			}
			userID = candidate.UserID
		} else {
			if _, err := companies.Register(req.Email, string(hashedPassword), req.CompanyName); err != nil {
				log.Printf("Database error during employer registration: %v", err)
				c.JSON(http.StatusInternalServerError, AuthResponse{
					Success: false,
					Message: "Failed to create account",
				})
				return
			}
			user, err := users.GetByEmail(req.Email)
			if err != nil {
				log.Printf("Database error during employer registration: %v", err)
				c.JSON(http.StatusInternalServerError, AuthResponse{
					Success: false,
					Message: "Failed to create account",
				})
				return
			}
			userID = user.ID
		}

		token, err := GenerateJWT(userID, req.Email, req.Role)
		if err != nil {
			c.JSON(http.StatusInternalServerError, AuthResponse{
				Success: false,
				Message: "Failed to generate authentication token",
			})
			return
		}

		c.JSON(http.StatusOK, AuthResponse{
			Success: true,
			Message: "Registration submitted, pending approval",
			User:    req.Email,
			Token:   token,
		})
	}
}

func Login(users *models.UserModel) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, AuthResponse{
				Success: false,
				Message: "Invalid request data: " + err.Error(),
			})
			return
		}

		user, err := users.GetByEmail(req.Email)
		if err != nil {
			if !errors.Is(err, models.ErrNotFound) {
				log.Printf("Database error during login: %v", err)
			}
			c.JSON(http.StatusUnauthorized, AuthResponse{
				Success: false,
				Message: "Invalid email or password",
			})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, AuthResponse{
				Success: false,
				Message: "Invalid email or password",
			})
			return
		}

		token, err := GenerateJWT(user.ID, user.Email, user.Role)
		if err != nil {
			c.JSON(http.StatusInternalServerError, AuthResponse{
				Success: false,
				Message: "Failed to generate authentication token",
			})
			return
		}

		c.JSON(http.StatusOK, AuthResponse{
			Success: true,
			Message: "Login successful",
			User:    user.Email,
			Token:   token,
		})
	}
}

// GetProfile returns the current user's account record
func GetProfile(users *models.UserModel) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("user_id")
		if !exists {
			utils.UnauthorizedError(c, "User not authenticated")
			return
		}

		user, err := users.GetByID(userID.(string))
		if err != nil {
			utils.NotFoundError(c, "User not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"profile": user,
		})
	}
}
