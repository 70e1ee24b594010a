package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"go-admin-portal/internal/model"
)

type fakeMenuRepo struct {
	menus map[uint]*model.Menu
}

func (f *fakeMenuRepo) FindAll() ([]model.Menu, error) { return nil, nil }

func (f *fakeMenuRepo) FindByID(id uint) (*model.Menu, error) {
	if m, ok := f.menus[id]; ok {
		return m, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeMenuRepo) FindByPath(path string) (*model.Menu, error) {
	for _, m := range f.menus {
		if m.Path == path {
			return m, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func uintPtr(v uint) *uint { return &v }

func TestInheritSuperOnly(t *testing.T) {
	repo := &fakeMenuRepo{menus: map[uint]*model.Menu{
		1: {ID: 1, Name: "Administration", Path: "/admin", SuperOnly: true},
		2: {ID: 2, Name: "Dashboard", Path: "/dashboard", SuperOnly: false},
	}}
	svc := &menuService{menuRepo: repo}

	cases := []struct {
		name     string
		req      MenuRequest
		expected bool
	}{
		{"super-only parent forces the flag", MenuRequest{ParentID: uintPtr(1), SuperOnly: false}, true},
		{"super-only parent with flag already set", MenuRequest{ParentID: uintPtr(1), SuperOnly: true}, true},
		{"plain parent keeps requested flag", MenuRequest{ParentID: uintPtr(2), SuperOnly: true}, true},
		{"plain parent keeps unset flag", MenuRequest{ParentID: uintPtr(2), SuperOnly: false}, false},
		{"root menu keeps requested flag", MenuRequest{ParentID: nil, SuperOnly: true}, true},
		{"missing parent keeps requested flag", MenuRequest{ParentID: uintPtr(99), SuperOnly: false}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.inheritSuperOnly(&tc.req)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestCreateMenuDuplicatePath(t *testing.T) {
	repo := &fakeMenuRepo{menus: map[uint]*model.Menu{
		1: {ID: 1, Name: "Dashboard", Path: "/dashboard"},
	}}
	svc := NewMenuService(repo, nil)

	_, err := svc.CreateMenu(&MenuRequest{Name: "Dash", Path: "/dashboard"})
	assert.ErrorIs(t, err, ErrMenuExists)
}

func TestUpdateMenuDuplicatePath(t *testing.T) {
	repo := &fakeMenuRepo{menus: map[uint]*model.Menu{
		1: {ID: 1, Name: "Dashboard", Path: "/dashboard"},
		2: {ID: 2, Name: "Reports", Path: "/reports"},
	}}
	svc := NewMenuService(repo, nil)

	_, err := svc.UpdateMenu(2, &MenuRequest{Name: "Reports", Path: "/dashboard"})
	assert.ErrorIs(t, err, ErrMenuExists)
}

func TestUpdateMenuNotFound(t *testing.T) {
	svc := NewMenuService(&fakeMenuRepo{menus: map[uint]*model.Menu{}}, nil)

	_, err := svc.UpdateMenu(42, &MenuRequest{Name: "Ghost", Path: "/ghost"})
	assert.ErrorIs(t, err, ErrMenuNotFound)
}
