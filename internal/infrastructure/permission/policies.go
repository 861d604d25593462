package permission

import (
	"fmt"

	"github.com/frigoservis/servis/internal/shared/authorization"
)

// Resources and actions checked by the HTTP permission middleware.
const (
	ResourceSparePart    = "spare_part"
	ResourceRemovedPart  = "removed_part"
	ResourceService      = "service"
	ResourceClient       = "client"
	ResourceNotification = "notification"
	ResourceUser         = "user"

	ActionCreate            = "create"
	ActionRead              = "read"
	ActionList              = "list"
	ActionUpdate            = "update"
	ActionDelete            = "delete"
	ActionExport            = "export"
	ActionAssign            = "assign"
	ActionChangeStatus      = "change_status"
	ActionComplete          = "complete"
	ActionDeliver           = "deliver"
	ActionReturnFromWaiting = "return_from_waiting"
	ActionRemind            = "remind"
	ActionMarkRemoved       = "mark_removed"
	ActionReturn            = "return"
)

var (
	admin      = string(authorization.RoleAdmin)
	technician = string(authorization.RoleTechnician)
	partner    = string(authorization.RoleBusinessPartner)
	supplier   = string(authorization.RoleSupplier)
	customer   = string(authorization.RoleCustomer)
	everyone   = []string{admin, technician, partner, supplier, customer}
)

type grant struct {
	resource string
	action   string
	roles    []string
}

var grants = []grant{
	{ResourceSparePart, ActionCreate, []string{admin, technician, partner}},
	{ResourceSparePart, ActionRead, []string{admin, technician, supplier, partner}},
	{ResourceSparePart, ActionList, []string{admin, supplier}},
	{ResourceSparePart, ActionUpdate, []string{admin, supplier}},
	{ResourceSparePart, ActionExport, []string{admin}},

	{ResourceRemovedPart, ActionCreate, []string{admin, technician}},
	{ResourceRemovedPart, ActionReturn, []string{admin, technician}},
	{ResourceRemovedPart, ActionRead, everyone},

	{ResourceService, ActionCreate, []string{admin, partner, customer}},
	{ResourceService, ActionRead, everyone},
	{ResourceService, ActionList, everyone},
	{ResourceService, ActionAssign, []string{admin}},
	{ResourceService, ActionChangeStatus, []string{admin, technician}},
	{ResourceService, ActionComplete, []string{admin, technician}},
	{ResourceService, ActionDeliver, []string{admin}},
	{ResourceService, ActionDelete, []string{admin}},
	{ResourceService, ActionExport, []string{admin}},
	{ResourceService, ActionReturnFromWaiting, []string{admin}},
	{ResourceService, ActionRemind, []string{admin}},
	{ResourceService, ActionMarkRemoved, []string{admin, technician}},

	{ResourceClient, ActionCreate, []string{admin, partner}},
	{ResourceClient, ActionRead, []string{admin, partner}},
	{ResourceClient, ActionList, []string{admin, partner}},
	{ResourceClient, ActionUpdate, []string{admin, partner}},

	{ResourceNotification, ActionRead, everyone},
	{ResourceNotification, ActionUpdate, everyone},

	{ResourceUser, ActionCreate, []string{admin}},
}

// DefaultPolicies expands the grant table into casbin (role, resource, action) rules.
func DefaultPolicies() [][]string {
	var out [][]string
	for _, g := range grants {
		for _, role := range g.roles {
			out = append(out, []string{role, g.resource, g.action})
		}
	}
	return out
}

// SyncPolicies makes the stored policy equal to DefaultPolicies: missing rules
// are added and rules no longer granted are removed.
func (e *Enforcer) SyncPolicies() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	want := DefaultPolicies()
	wantSet := make(map[string]bool, len(want))
	for _, p := range want {
		wantSet[fmt.Sprint(p)] = true
	}

	current, err := e.enforcer.GetPolicy()
	if err != nil {
		return fmt.Errorf("failed to read policies: %w", err)
	}
	var stale [][]string
	for _, p := range current {
		if !wantSet[fmt.Sprint(p)] {
			stale = append(stale, p)
		}
	}
	if len(stale) > 0 {
		if _, err := e.enforcer.RemovePolicies(stale); err != nil {
			return fmt.Errorf("failed to remove stale policies: %w", err)
		}
	}

	if _, err := e.enforcer.AddPoliciesEx(want); err != nil {
		return fmt.Errorf("failed to add policies: %w", err)
	}

	e.logger.Infow("permission policies synced", "rules", len(want), "removed", len(stale))
	return nil
}
