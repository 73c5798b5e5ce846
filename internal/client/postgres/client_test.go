package postgres

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/felixonline247/opolo-cbt-app/internal"
	"github.com/felixonline247/opolo-cbt-app/internal/client"
)

func TestClientRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "ClientRepository Suite")
}

var _ = Describe("ClientRepository", func() {
	var (
		db   *gorm.DB
		repo *ClientRepository
	)

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&client.Client{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewClientRepository(db)

		Expect(repo.Create(&client.Client{Name: "John Doe", ParentName: "Mrs. Smith", Phone: "08011112222", LastService: "New Registration"})).To(Succeed())
		Expect(repo.Create(&client.Client{Name: "Jane Roe", ParentName: "Mr. Roe", Phone: "08033334444", LastService: "New Registration"})).To(Succeed())
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	Describe("List", func() {
		It("returns everyone when the search term is empty", func() {
			clients, err := repo.List("")
			Expect(err).NotTo(HaveOccurred())
			Expect(clients).To(HaveLen(2))
		})

		It("matches on name", func() {
			clients, err := repo.List("Jane")
			Expect(err).NotTo(HaveOccurred())
			Expect(clients).To(HaveLen(1))
			Expect(clients[0].Name).To(Equal("Jane Roe"))
		})

		It("matches on parent name", func() {
			clients, err := repo.List("Smith")
			Expect(err).NotTo(HaveOccurred())
			Expect(clients).To(HaveLen(1))
			Expect(clients[0].Name).To(Equal("John Doe"))
		})

		It("matches on phone", func() {
			clients, err := repo.List("0803")
			Expect(err).NotTo(HaveOccurred())
			Expect(clients).To(HaveLen(1))
			Expect(clients[0].Name).To(Equal("Jane Roe"))
		})
	})

	Describe("Delete", func() {
		It("removes the row", func() {
			Expect(repo.Delete(1)).To(Succeed())

			_, err := repo.GetByID(1)
			Expect(err).To(Equal(internal.ErrClientNotFound))
		})

		It("fails for unknown ids", func() {
			Expect(repo.Delete(99)).To(Equal(internal.ErrClientNotFound))
		})
	})
})
