package helpers

type EnhancedClaims struct {
	*CustomClaims
	Role        string  `json:"role"`
	UserID      string  `json:"id"`
	Email       string  `json:"email,omitempty"`
	DisplayName string  `json:"display_name,omitempty"`
	Credits     int     `json:"credits"`
	Ranking     float64 `json:"ranking,omitempty"`
	AvatarURL   string  `json:"avatar_url,omitempty"`
	CreatedAt   string  `json:"created_at,omitempty"`
}

// Helper methods for role checking
func (ec *EnhancedClaims) IsAdmin() bool {
	return ec.Role == "admin"
}

func (ec *EnhancedClaims) IsGuide() bool {
	return ec.Role == "guide"
}

func (ec *EnhancedClaims) CanCreatePackages() bool {
	switch ec.Role {
	case "agent", "venue", "guide", "admin":
		return true
	}
	return false
}

func (ec *EnhancedClaims) HasRole(role string) bool {
	return ec.Role == role
}

func (ec *EnhancedClaims) IsOwner(userID string) bool {
	return ec.UserID == userID
}

func (ec *EnhancedClaims) GetSafeRole() string {
	if ec.Role == "" {
		return "guest"
	}
	return ec.Role
}
