package settings_test

import (
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/felixonline247/opolo-cbt-app/internal"
	"github.com/felixonline247/opolo-cbt-app/internal/permission"
	"github.com/felixonline247/opolo-cbt-app/internal/settings"
)

func TestSettings(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Settings Suite")
}

type mockSettingsRepository struct {
	current *settings.Settings
}

func (m *mockSettingsRepository) Get() (*settings.Settings, error) {
	if m.current == nil {
		m.current = &settings.Settings{
			ID:                   1,
			BusinessName:         "Opolo CBT Resort",
			GlobalCommissionRate: decimal.NewFromInt(5),
		}
	}
	return m.current, nil
}

func (m *mockSettingsRepository) Update(s *settings.Settings) error {
	m.current = s
	return nil
}

type mockPresetRepository struct {
	presets []*settings.ServicePreset
	nextID  int64
}

func (m *mockPresetRepository) Create(p *settings.ServicePreset) error {
	m.nextID++
	p.ID = m.nextID
	m.presets = append(m.presets, p)
	return nil
}

func (m *mockPresetRepository) List() ([]*settings.ServicePreset, error) {
	return m.presets, nil
}

func (m *mockPresetRepository) Delete(id int64) error {
	for i, p := range m.presets {
		if p.ID == id {
			m.presets = append(m.presets[:i], m.presets[i+1:]...)
			return nil
		}
	}
	return internal.ErrPresetNotFound
}

var _ = Describe("Settings Service", func() {
	var (
		repo    *mockSettingsRepository
		presets *mockPresetRepository
		service *settings.Service

		adminPerms permission.Set
		noPerms    permission.Set
	)

	BeforeEach(func() {
		repo = &mockSettingsRepository{}
		presets = &mockPresetRepository{}
		testLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		service = settings.NewService(repo, presets, testLogger)

		adminPerms = permission.Parse([]string{"manage_settings"})
		noPerms = permission.Parse([]string{"view_payroll"})
	})

	It("returns the current settings to any caller", func() {
		current, err := service.GetSettings()
		Expect(err).NotTo(HaveOccurred())
		Expect(current.BusinessName).To(Equal("Opolo CBT Resort"))
	})

	It("exposes the global commission rate for payroll", func() {
		rate, err := service.GlobalCommissionRate()
		Expect(err).NotTo(HaveOccurred())
		Expect(rate.Equal(decimal.NewFromInt(5))).To(BeTrue())
	})

	Describe("UpdateSettings", func() {
		It("updates the global rate", func() {
			rate := "7.5"
			updated, err := service.UpdateSettings(&settings.UpdateSettingsDTO{GlobalCommissionRate: &rate}, adminPerms)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.GlobalCommissionRate.String()).To(Equal("7.5"))

			got, err := service.GlobalCommissionRate()
			Expect(err).NotTo(HaveOccurred())
			Expect(got.String()).To(Equal("7.5"))
		})

		It("rejects a negative rate", func() {
			rate := "-1"
			_, err := service.UpdateSettings(&settings.UpdateSettingsDTO{GlobalCommissionRate: &rate}, adminPerms)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidRate))
		})

		It("rejects an empty business name", func() {
			name := "  "
			_, err := service.UpdateSettings(&settings.UpdateSettingsDTO{BusinessName: &name}, adminPerms)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
		})

		It("denies callers without manage_settings", func() {
			rate := "7.5"
			_, err := service.UpdateSettings(&settings.UpdateSettingsDTO{GlobalCommissionRate: &rate}, noPerms)
			Expect(err).To(Equal(internal.ErrForbidden))
		})
	})

	Describe("CreateServicePreset", func() {
		It("stores a valid preset", func() {
			created, err := service.CreateServicePreset(&settings.CreatePresetDTO{
				ServiceName:      "JAMB Registration",
				TotalAmount:      "7000",
				InstitutionSplit: "4700",
			}, adminPerms)
			Expect(err).NotTo(HaveOccurred())
			Expect(created.ID).To(Equal(int64(1)))
			Expect(created.TotalAmount.String()).To(Equal("7000"))
			Expect(created.InstitutionSplit.String()).To(Equal("4700"))
		})

		It("defaults the institution split to zero", func() {
			created, err := service.CreateServicePreset(&settings.CreatePresetDTO{
				ServiceName: "Passport Photograph",
				TotalAmount: "500",
			}, adminPerms)
			Expect(err).NotTo(HaveOccurred())
			Expect(created.InstitutionSplit.IsZero()).To(BeTrue())
		})

		It("rejects a non-positive amount", func() {
			_, err := service.CreateServicePreset(&settings.CreatePresetDTO{
				ServiceName: "JAMB Registration",
				TotalAmount: "0",
			}, adminPerms)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidAmount))
		})

		It("rejects a split larger than the amount", func() {
			_, err := service.CreateServicePreset(&settings.CreatePresetDTO{
				ServiceName:      "JAMB Registration",
				TotalAmount:      "7000",
				InstitutionSplit: "7001",
			}, adminPerms)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidAmount))
		})

		It("denies callers without manage_settings", func() {
			_, err := service.CreateServicePreset(&settings.CreatePresetDTO{
				ServiceName: "JAMB Registration",
				TotalAmount: "7000",
			}, noPerms)
			Expect(err).To(Equal(internal.ErrForbidden))
		})
	})

	Describe("ListServicePresets", func() {
		It("is readable without manage_settings", func() {
			_, err := service.CreateServicePreset(&settings.CreatePresetDTO{
				ServiceName: "JAMB Registration",
				TotalAmount: "7000",
			}, adminPerms)
			Expect(err).NotTo(HaveOccurred())

			listed, err := service.ListServicePresets()
			Expect(err).NotTo(HaveOccurred())
			Expect(listed).To(HaveLen(1))
			Expect(listed[0].ServiceName).To(Equal("JAMB Registration"))
		})
	})

	Describe("DeleteServicePreset", func() {
		It("removes the preset", func() {
			created, err := service.CreateServicePreset(&settings.CreatePresetDTO{
				ServiceName: "JAMB Registration",
				TotalAmount: "7000",
			}, adminPerms)
			Expect(err).NotTo(HaveOccurred())

			Expect(service.DeleteServicePreset(created.ID, adminPerms)).To(Succeed())

			listed, err := service.ListServicePresets()
			Expect(err).NotTo(HaveOccurred())
			Expect(listed).To(BeEmpty())
		})

		It("denies callers without manage_settings", func() {
			Expect(service.DeleteServicePreset(1, noPerms)).To(Equal(internal.ErrForbidden))
		})

		It("fails for unknown ids", func() {
			Expect(service.DeleteServicePreset(42, adminPerms)).To(Equal(internal.ErrPresetNotFound))
		})
	})
})
