package service

import (
	"go-admin-portal/internal/model"
)

// actionRank orders actions by grant strength for tie-breaking.
func actionRank(a model.MenuActionType) int {
	switch a {
	case model.ActionEdit:
		return 3
	case model.ActionView:
		return 2
	case model.ActionHide:
		return 1
	}
	return 0
}

// BuildMenuViews turns a role's granted actions (with menus preloaded) into
// the menu view list. Super-only menus are filtered out unless the role is
// superAdmin. Each menu yields at most one entry; when a role holds several
// actions on the same menu the strongest one wins (edit > view > hide).
// Menus appear in first-grant order.
func BuildMenuViews(role *model.Role) []model.MenuWithAction {
	views := make([]model.MenuWithAction, 0, len(role.Actions))
	index := make(map[uint]int)

	for _, action := range role.Actions {
		menu := action.Menu
		if menu == nil {
			continue
		}
		if menu.SuperOnly && role.Name != model.RoleSuperAdmin {
			continue
		}

		if i, seen := index[menu.ID]; seen {
			if actionRank(action.Action) > actionRank(views[i].Action) {
				views[i].Action = action.Action
			}
			continue
		}

		index[menu.ID] = len(views)
		views = append(views, model.MenuWithAction{
			ID:        menu.ID,
			Name:      menu.Name,
			Path:      menu.Path,
			ParentID:  menu.ParentID,
			SuperOnly: menu.SuperOnly,
			Action:    action.Action,
		})
	}

	return views
}
