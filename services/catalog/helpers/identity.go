package helpers

import "github.com/gin-gonic/gin"

const identityKey = "catalog.identity"

// Identity is the caller as resolved by the authentication middleware. An
// empty Subject means anonymous.
type Identity struct {
	Subject string
	Name    string
}

// SetIdentity stores the resolved caller on the request context
func SetIdentity(c *gin.Context, id Identity) {
	c.Set(identityKey, id)
}

// IdentityFrom returns the caller stored by SetIdentity, or an anonymous identity
func IdentityFrom(c *gin.Context) Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}
	}
	id, _ := v.(Identity)
	return id
}
