package receipt

import (
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/zombor/expense-scanner/internal/parsing"
)

var _ = Describe("BoltDB", func() {
	var (
		tmpDir string
		dbPath string
		db     *BoltDB
	)

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
		dbPath = filepath.Join(tmpDir, "test.db")
		var err error
		db, err = NewBoltDB(dbPath)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	Describe("SaveExpense", func() {
		var (
			expense *Expense
			err     error
		)

		BeforeEach(func() {
			expense = &Expense{
				ID:       "test-id",
				Vendor:   "SAMCO Restaurant",
				Category: parsing.FoodAndDining,
				Icon:     "utensils",
				Amount:   195000,
				Date:     time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC),
				Items: []parsing.LineItem{
					{Name: "Fried Rice", Price: 850, Quantity: 2, Subtotal: 1700},
				},
				Filename:    "test-id_receipt.jpg",
				ContentType: "image/jpeg",
				CreatedAt:   time.Date(2024, 5, 13, 9, 0, 0, 0, time.UTC),
				UpdatedAt:   time.Date(2024, 5, 13, 9, 0, 0, 0, time.UTC),
			}
		})

		JustBeforeEach(func() {
			err = db.SaveExpense(expense)
		})

		When("saving succeeds", func() {
			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("should round-trip every field", func() {
				saved, getErr := db.GetExpense("test-id")
				Expect(getErr).NotTo(HaveOccurred())
				Expect(saved).To(Equal(expense))
			})
		})

		When("the expense is saved again", func() {
			It("should replace the stored copy", func() {
				expense.Category = parsing.Miscellaneous
				Expect(db.SaveExpense(expense)).To(Succeed())

				all, listErr := db.ListExpenses()
				Expect(listErr).NotTo(HaveOccurred())
				Expect(all).To(HaveLen(1))
				Expect(all[0].Category).To(Equal(parsing.Miscellaneous))
			})
		})

		When("the expense has no ID", func() {
			BeforeEach(func() {
				expense.ID = ""
			})

			It("should return an error", func() {
				Expect(err).To(HaveOccurred())
			})
		})
	})

	Describe("GetExpense", func() {
		When("the expense does not exist", func() {
			It("should return ErrNotFound", func() {
				_, err := db.GetExpense("missing")
				Expect(err).To(MatchError(ErrNotFound))
			})
		})
	})

	Describe("ListExpenses", func() {
		When("the database is empty", func() {
			It("should return an empty, non-nil slice", func() {
				expenses, err := db.ListExpenses()
				Expect(err).NotTo(HaveOccurred())
				Expect(expenses).NotTo(BeNil())
				Expect(expenses).To(BeEmpty())
			})
		})

		When("expenses exist", func() {
			BeforeEach(func() {
				Expect(db.SaveExpense(&Expense{ID: "a", Category: parsing.Groceries, Amount: 100})).To(Succeed())
				Expect(db.SaveExpense(&Expense{ID: "b", Category: parsing.Health, Amount: 200})).To(Succeed())
			})

			It("should return all of them", func() {
				expenses, err := db.ListExpenses()
				Expect(err).NotTo(HaveOccurred())
				Expect(expenses).To(HaveLen(2))
			})
		})
	})

	Describe("DeleteExpense", func() {
		BeforeEach(func() {
			Expect(db.SaveExpense(&Expense{ID: "a", Category: parsing.Groceries, Amount: 100})).To(Succeed())
		})

		It("should remove the expense", func() {
			Expect(db.DeleteExpense("a")).To(Succeed())
			_, err := db.GetExpense("a")
			Expect(err).To(MatchError(ErrNotFound))
		})

		It("should return ErrNotFound for a missing ID", func() {
			Expect(db.DeleteExpense("missing")).To(MatchError(ErrNotFound))
		})
	})

	Describe("NewBoltDB", func() {
		It("should keep data across reopen", func() {
			Expect(db.SaveExpense(&Expense{ID: "persist", Category: parsing.Utilities, Amount: 5000})).To(Succeed())
			Expect(db.Close()).To(Succeed())

			reopened, err := NewBoltDB(dbPath)
			Expect(err).NotTo(HaveOccurred())
			db = reopened

			saved, err := db.GetExpense("persist")
			Expect(err).NotTo(HaveOccurred())
			Expect(saved.Amount).To(Equal(5000))
		})

		It("should fail for a path in a missing directory", func() {
			_, err := NewBoltDB(filepath.Join(tmpDir, "missing", "x.db"))
			Expect(err).To(MatchError(ContainSubstring("opening boltdb")))
		})
	})
})
