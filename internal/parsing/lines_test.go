package parsing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Lines", func() {
	It("trims lines and drops empty ones", func() {
		Expect(Lines("  Fresh Mart \n\n\tMilk 3.49\r\n   \nTotal 3.49")).To(Equal([]string{
			"Fresh Mart",
			"Milk 3.49",
			"Total 3.49",
		}))
	})

	It("keeps case and punctuation", func() {
		Expect(Lines("ACME, Inc.\nThank-you!")).To(Equal([]string{"ACME, Inc.", "Thank-you!"}))
	})

	It("returns an empty, non-nil slice for empty text", func() {
		lines := Lines("")
		Expect(lines).NotTo(BeNil())
		Expect(lines).To(BeEmpty())
	})
})

var _ = Describe("Vendor", func() {
	It("returns the first line verbatim", func() {
		Expect(Vendor([]string{"Joe's Diner #12", "Main St"})).To(Equal("Joe's Diner #12"))
	})

	It("returns nothing when there are no lines", func() {
		Expect(Vendor(nil)).To(BeEmpty())
	})
})
