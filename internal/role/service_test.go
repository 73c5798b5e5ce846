package role_test

import (
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/felixonline247/opolo-cbt-app/internal"
	"github.com/felixonline247/opolo-cbt-app/internal/permission"
	"github.com/felixonline247/opolo-cbt-app/internal/role"
)

func TestRole(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Role Suite")
}

type mockRoleRepository struct {
	roles  map[int64]*role.Role
	inUse  map[int64]bool
	nextID int64
}

func newMockRoleRepository() *mockRoleRepository {
	return &mockRoleRepository{
		roles:  make(map[int64]*role.Role),
		inUse:  make(map[int64]bool),
		nextID: 1,
	}
}

func (m *mockRoleRepository) Create(rl *role.Role) error {
	rl.ID = m.nextID
	m.nextID++
	m.roles[rl.ID] = rl
	return nil
}

func (m *mockRoleRepository) GetByID(id int64) (*role.Role, error) {
	rl, ok := m.roles[id]
	if !ok {
		return nil, internal.ErrRoleNotFound
	}
	return rl, nil
}

func (m *mockRoleRepository) List() ([]*role.Role, error) {
	var out []*role.Role
	for _, rl := range m.roles {
		out = append(out, rl)
	}
	return out, nil
}

func (m *mockRoleRepository) Update(rl *role.Role) error {
	m.roles[rl.ID] = rl
	return nil
}

func (m *mockRoleRepository) Delete(id int64) error {
	delete(m.roles, id)
	return nil
}

func (m *mockRoleRepository) InUse(id int64) (bool, error) {
	return m.inUse[id], nil
}

var _ = Describe("Role Service", func() {
	var (
		repo    *mockRoleRepository
		service *role.Service

		adminPerms permission.Set
		noPerms    permission.Set
	)

	BeforeEach(func() {
		repo = newMockRoleRepository()
		testLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		service = role.NewService(repo, testLogger)

		adminPerms = permission.Parse([]string{"manage_settings"})
		noPerms = permission.Parse([]string{"view_sales"})
	})

	Describe("CreateRole", func() {
		It("normalizes and stores the permission list", func() {
			created, err := service.CreateRole(&role.RoleDTO{
				Name:        "Cashier",
				Permissions: []string{"View_Sales", "create_sales", "view_sales"},
			}, adminPerms)
			Expect(err).NotTo(HaveOccurred())

			set := created.PermissionSet()
			Expect(set.Has("view_sales")).To(BeTrue())
			Expect(set.Has("create_sales")).To(BeTrue())
			Expect(set.Has("process_payouts")).To(BeFalse())
		})

		It("accepts the wildcard", func() {
			created, err := service.CreateRole(&role.RoleDTO{
				Name:        "Admin",
				Permissions: []string{"all"},
			}, adminPerms)
			Expect(err).NotTo(HaveOccurred())
			Expect(created.PermissionSet().IsWildcard()).To(BeTrue())
		})

		It("rejects unknown permission ids", func() {
			_, err := service.CreateRole(&role.RoleDTO{
				Name:        "Broken",
				Permissions: []string{"launch_rockets"},
			}, adminPerms)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("denies callers without manage_settings", func() {
			_, err := service.CreateRole(&role.RoleDTO{Name: "Cashier"}, noPerms)
			Expect(err).To(Equal(internal.ErrForbidden))
		})
	})

	Describe("ListRoles", func() {
		It("is readable without manage_settings", func() {
			_, err := service.CreateRole(&role.RoleDTO{
				Name:        "Cashier",
				Permissions: []string{"view_sales"},
			}, adminPerms)
			Expect(err).NotTo(HaveOccurred())

			roles, err := service.ListRoles()
			Expect(err).NotTo(HaveOccurred())
			Expect(roles).To(HaveLen(1))
			Expect(roles[0].Name).To(Equal("Cashier"))
		})
	})

	Describe("UpdateRole", func() {
		It("replaces the permission list", func() {
			created, err := service.CreateRole(&role.RoleDTO{
				Name:        "Cashier",
				Permissions: []string{"view_sales"},
			}, adminPerms)
			Expect(err).NotTo(HaveOccurred())

			updated, err := service.UpdateRole(created.ID, &role.RoleDTO{
				Name:        "Cashier",
				Permissions: []string{"view_sales", "process_payouts"},
			}, adminPerms)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.PermissionSet().Has("process_payouts")).To(BeTrue())
		})

		It("fails for unknown roles", func() {
			_, err := service.UpdateRole(99, &role.RoleDTO{Name: "X"}, adminPerms)
			Expect(err).To(Equal(internal.ErrRoleNotFound))
		})
	})

	Describe("DeleteRole", func() {
		It("deletes an unused role", func() {
			created, err := service.CreateRole(&role.RoleDTO{Name: "Temp"}, adminPerms)
			Expect(err).NotTo(HaveOccurred())

			Expect(service.DeleteRole(created.ID, adminPerms)).To(Succeed())

			_, err = service.GetRole(created.ID, adminPerms)
			Expect(err).To(Equal(internal.ErrRoleNotFound))
		})

		It("refuses to delete a role still assigned to staff", func() {
			created, err := service.CreateRole(&role.RoleDTO{Name: "Busy"}, adminPerms)
			Expect(err).NotTo(HaveOccurred())
			repo.inUse[created.ID] = true

			err = service.DeleteRole(created.ID, adminPerms)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeConflict))
		})
	})
})
