package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frigoservis/servis/internal/shared/authorization"
)

func TestNewUser(t *testing.T) {
	u, err := NewUser("Serviser.Jovan", "Jovan Jovic", authorization.RoleTechnician, "0641112223", "", "$2a$hash", nil)
	require.NoError(t, err)
	assert.Equal(t, "serviser.jovan", u.Username())
	assert.True(t, u.IsActive())
	assert.Nil(t, u.ClientID())
}

func TestNewUser_CustomerNeedsClient(t *testing.T) {
	_, err := NewUser("kupac1", "", authorization.RoleCustomer, "", "", "h", nil)
	assert.Error(t, err)

	clientID := uint(9)
	u, err := NewUser("kupac1", "", authorization.RoleCustomer, "", "", "h", &clientID)
	require.NoError(t, err)
	assert.Equal(t, "kupac1", u.FullName())

	_, err = NewUser("admin1", "", authorization.RoleAdmin, "", "", "h", &clientID)
	assert.Error(t, err)
}

func TestNewUser_Validation(t *testing.T) {
	_, err := NewUser("ab", "", authorization.RoleAdmin, "", "", "h", nil)
	assert.Error(t, err)
	_, err = NewUser("valid_name", "", "root", "", "", "h", nil)
	assert.Error(t, err)
	_, err = NewUser("valid_name", "", authorization.RoleAdmin, "", "", "", nil)
	assert.Error(t, err)
}
