package config

import "os"

const (
	jwtSecretEnv = "JWT_SECRET"
	jwtIssuerEnv = "JWT_ISSUER"

	defaultJWTIssuer = "cycling-coach"
)

type AuthConfig struct {
	Secret string
	Issuer string
}

func LoadAuthConfig() *AuthConfig {
	return &AuthConfig{
		Secret: os.Getenv(jwtSecretEnv),
		Issuer: stringOr(jwtIssuerEnv, defaultJWTIssuer),
	}
}

func (c *AuthConfig) Validate() error {
	if c == nil || c.Secret == "" {
		return ErrJWTSecretMissing
	}
	return nil
}
