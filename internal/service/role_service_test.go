package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"go-admin-portal/internal/model"
)

type fakeRoleRepo struct {
	roles map[uint]*model.Role
}

func (f *fakeRoleRepo) FindAll(limit, offset int) ([]model.Role, int64, error) { return nil, 0, nil }

func (f *fakeRoleRepo) FindByID(id uint) (*model.Role, error) {
	if r, ok := f.roles[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRoleRepo) FindByIDWithGrants(id uint) (*model.Role, error) { return f.FindByID(id) }

func (f *fakeRoleRepo) FindByName(name string) (*model.Role, error) {
	for _, r := range f.roles {
		if r.Name == name {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRoleRepo) Create(role *model.Role) error { return nil }
func (f *fakeRoleRepo) Update(role *model.Role) error { return nil }

type fakeUserRepo struct {
	assignedByRole map[uint]int64
}

func (f *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUserRepo) FindByID(id uint) (*model.User, error) { return nil, gorm.ErrRecordNotFound }
func (f *fakeUserRepo) FindAll(limit, offset int) ([]model.User, int64, error) {
	return nil, 0, nil
}
func (f *fakeUserRepo) Create(user *model.User) error        { return nil }
func (f *fakeUserRepo) Update(user *model.User) error        { return nil }
func (f *fakeUserRepo) Delete(id uint) error                 { return nil }
func (f *fakeUserRepo) AssignRole(userID, roleID uint) error { return nil }

func (f *fakeUserRepo) CountByRole(roleID uint) (int64, error) {
	return f.assignedByRole[roleID], nil
}

// The delete guards all run before the transaction, so a nil db is fine
// here: reaching it would be the test failure.
func newDeleteFixture(role *model.Role, assigned int64) RoleService {
	return NewRoleService(
		&fakeRoleRepo{roles: map[uint]*model.Role{role.ID: role}},
		&fakeUserRepo{assignedByRole: map[uint]int64{role.ID: assigned}},
		nil,
	)
}

func TestDeleteRoleStillAssigned(t *testing.T) {
	svc := newDeleteFixture(&model.Role{ID: 5, Name: "operators"}, 3)

	err := svc.DeleteRole(5)
	assert.ErrorIs(t, err, ErrRoleInUse)
}

func TestDeleteRolePreset(t *testing.T) {
	svc := newDeleteFixture(&model.Role{ID: 2, Name: model.RoleGuest, IsPreset: true}, 0)

	err := svc.DeleteRole(2)
	assert.ErrorIs(t, err, ErrPresetRole)
}

func TestDeleteRolePresetAndAssigned(t *testing.T) {
	// Usage wins over preset protection when both apply.
	svc := newDeleteFixture(&model.Role{ID: 1, Name: model.RoleAdmin, IsPreset: true}, 7)

	err := svc.DeleteRole(1)
	assert.ErrorIs(t, err, ErrRoleInUse)
}

func TestDeleteRoleNotFound(t *testing.T) {
	svc := NewRoleService(&fakeRoleRepo{roles: map[uint]*model.Role{}}, &fakeUserRepo{}, nil)

	err := svc.DeleteRole(99)
	assert.ErrorIs(t, err, ErrRoleNotFound)
}
