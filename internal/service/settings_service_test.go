package service_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tinkerhaus/crema/internal/models"
	"github.com/tinkerhaus/crema/internal/pkg/logger"
	"github.com/tinkerhaus/crema/internal/repository"
	"github.com/tinkerhaus/crema/internal/service"
)

var _ = Describe("SettingsService", func() {
	var svc *service.SettingsService

	BeforeEach(func() {
		repo, err := repository.NewFileSettingsRepository(GinkgoT().TempDir())
		Expect(err).NotTo(HaveOccurred())
		svc = service.NewSettingsService(repo, logger.Nop())
	})

	It("returns defaults before anything was saved", func() {
		settings, err := svc.GetSettings()
		Expect(err).NotTo(HaveOccurred())
		Expect(settings.DisplayName).To(Equal(""))
		Expect(settings.Language).To(Equal("en"))
	})

	It("persists updated settings", func() {
		Expect(svc.UpdateSettings(&models.Settings{DisplayName: "  Ada  ", Language: "de"})).To(Succeed())

		settings, err := svc.GetSettings()
		Expect(err).NotTo(HaveOccurred())
		Expect(settings.DisplayName).To(Equal("Ada"))
		Expect(settings.Language).To(Equal("de"))
	})

	It("rejects an oversized display name", func() {
		err := svc.UpdateSettings(&models.Settings{DisplayName: strings.Repeat("a", 65)})
		Expect(err).To(MatchError(ContainSubstring("display name too long")))
	})

	It("rejects tag groups without a name", func() {
		err := svc.UpdateSettings(&models.Settings{
			TagGroups: []models.TagGroup{{Name: "  ", Tags: []string{"x"}}},
		})
		Expect(err).To(MatchError(ContainSubstring("empty name")))
	})

	Describe("GetTagGroups", func() {
		It("serves the built-in taxonomy by default", func() {
			groups, err := svc.GetTagGroups()
			Expect(err).NotTo(HaveOccurred())
			Expect(groups).To(Equal(models.DefaultTagGroups()))
		})

		It("overlays custom groups onto the defaults", func() {
			Expect(svc.UpdateSettings(&models.Settings{
				TagGroups: []models.TagGroup{
					{Name: "Flavor", Tags: []string{"smoky"}},
					{Name: "Grinder", Tags: []string{"coarse", "fine"}},
				},
			})).To(Succeed())

			groups, err := svc.GetTagGroups()
			Expect(err).NotTo(HaveOccurred())

			byName := map[string][]string{}
			for _, g := range groups {
				byName[g.Name] = g.Tags
			}
			Expect(byName["Flavor"]).To(Equal([]string{"smoky"}))
			Expect(byName["Grinder"]).To(Equal([]string{"coarse", "fine"}))
			Expect(byName).To(HaveKey("Roast"))
		})
	})
})
