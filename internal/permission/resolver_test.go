package permission

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/felixonline247/opolo-cbt-app/internal"
)

type mockDirectory struct {
	permissions map[string]interface{}
	returnError error
}

func (m *mockDirectory) RolePermissions(_ context.Context, email string) (interface{}, bool, error) {
	if m.returnError != nil {
		return nil, false, m.returnError
	}
	raw, ok := m.permissions[email]
	return raw, ok, nil
}

var _ = ginkgo.Describe("Resolver", func() {
	var (
		resolver *Resolver
		dir      *mockDirectory
	)

	ginkgo.BeforeEach(func() {
		dir = &mockDirectory{
			permissions: map[string]interface{}{
				"admin@opolo.ng":   "all",
				"cashier@opolo.ng": []string{"View_Sales", "Create_Sales", "Process_Payouts"},
				"tutor@opolo.ng":   `["view_sales"]`,
			},
		}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		resolver = NewResolver(dir, logger)
	})

	ginkgo.Context("when the identity has a role", func() {
		ginkgo.It("should resolve a wildcard role to full access", func() {
			res := resolver.Resolve(context.Background(), "admin@opolo.ng")

			gomega.Expect(res.Resolved()).To(gomega.BeTrue())
			allowed, err := res.Allowed(ProcessPayouts)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(allowed).To(gomega.BeTrue())
		})

		ginkgo.It("should grant and deny deterministically after resolution", func() {
			res := resolver.Resolve(context.Background(), "cashier@opolo.ng")

			allowed, err := res.Allowed(ProcessPayouts)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(allowed).To(gomega.BeTrue())

			allowed, err = res.Allowed(ManageSettings)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(allowed).To(gomega.BeFalse())
		})

		ginkgo.It("should normalize serialized role encodings", func() {
			res := resolver.Resolve(context.Background(), "tutor@opolo.ng")

			allowed, err := res.Allowed(ViewSales)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(allowed).To(gomega.BeTrue())
		})
	})

	ginkgo.Context("when the identity has no staff record or role", func() {
		ginkgo.It("should resolve to the empty set and deny without error", func() {
			res := resolver.Resolve(context.Background(), "stranger@example.com")

			gomega.Expect(res.Resolved()).To(gomega.BeTrue())
			for _, entry := range Catalog {
				allowed, err := res.Allowed(entry.ID)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(allowed).To(gomega.BeFalse())
			}
		})
	})

	ginkgo.Context("when the lookup fails", func() {
		ginkgo.It("should stay pending rather than deny", func() {
			dir.returnError = errors.New("store unavailable")

			res := resolver.Resolve(context.Background(), "cashier@opolo.ng")

			gomega.Expect(res.Resolved()).To(gomega.BeFalse())
			_, err := res.Allowed(ViewSales)
			gomega.Expect(err).To(gomega.MatchError(internal.ErrUnresolved))
		})
	})

	ginkgo.Describe("pending resolution", func() {
		ginkgo.It("should not grant or deny before completion", func() {
			res := NewPendingResolution()

			allowed, err := res.Allowed(ViewPayroll)
			gomega.Expect(allowed).To(gomega.BeFalse())
			gomega.Expect(err).To(gomega.MatchError(internal.ErrUnresolved))

			res.Complete(NewSet(ViewPayroll))

			allowed, err = res.Allowed(ViewPayroll)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(allowed).To(gomega.BeTrue())
		})
	})
})
