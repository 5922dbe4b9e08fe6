package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	patientRepo "medibook/database/repository/patient"
	providerRepo "medibook/database/repository/provider"
	"medibook/models"
	"medibook/utils"
)

// Context keys set by the auth middlewares.
const (
	ContextActorID   = "actorID"
	ContextActorRole = "actorRole"
)

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(authHeader, "Bearer "), true
}

// authCacheHit reports whether this token hash was recently verified
// against the database, saving the lookup on the hot path.
func authCacheHit(tokenHash string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	ok, err := utils.GetAuthCacheClient().Exists(ctx, utils.AuthCachePrefix+tokenHash).Result()
	return err == nil && ok == 1
}

func cacheAuth(tokenHash string) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	_ = utils.GetAuthCacheClient().Set(ctx, utils.AuthCachePrefix+tokenHash, 1, utils.AuthCacheTTL).Err()
}

// JWTAuthPatientMiddleware authenticates patient tokens. The token must be
// valid and its hash must match the patient's stored session hash.
func JWTAuthPatientMiddleware(patients patientRepo.PatientRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		subject, role, err := utils.TokenClaims(tokenString)
		if err != nil || role != models.RolePatient {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		tokenHash := utils.HashToken(tokenString)
		if !authCacheHit(tokenHash) {
			pat, err := patients.GetByTokenHash(tokenHash)
			if err != nil || pat == nil || pat.ID != subject {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch or patient not found"})
				return
			}
			cacheAuth(tokenHash)
		}

		c.Set(ContextActorID, subject)
		c.Set(ContextActorRole, models.RolePatient)
		c.Next()
	}
}

// JWTAuthProviderMiddleware authenticates provider tokens.
func JWTAuthProviderMiddleware(providers providerRepo.ProviderRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		subject, role, err := utils.TokenClaims(tokenString)
		if err != nil || role != models.RoleProvider {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		tokenHash := utils.HashToken(tokenString)
		if !authCacheHit(tokenHash) {
			prov, err := providers.GetByTokenHash(tokenHash)
			if err != nil || prov == nil || prov.ID != subject {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch or provider not found"})
				return
			}
			cacheAuth(tokenHash)
		}

		c.Set(ContextActorID, subject)
		c.Set(ContextActorRole, models.RoleProvider)
		c.Next()
	}
}

// JWTAuthAdminMiddleware authenticates the admin token. Admin sessions are
// stateless: the signed role claim alone is authoritative.
func JWTAuthAdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		subject, role, err := utils.TokenClaims(tokenString)
		if err != nil || role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		c.Set(ContextActorID, subject)
		c.Set(ContextActorRole, models.RoleAdmin)
		c.Next()
	}
}

// Actor reconstructs the authenticated identity stored by the auth
// middlewares.
func Actor(c *gin.Context) models.Actor {
	return models.Actor{
		ID:   c.GetString(ContextActorID),
		Role: c.GetString(ContextActorRole),
	}
}
