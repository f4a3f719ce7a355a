package parsing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const groceryReceipt = `Fresh Mart Grocers
123 Main Street
Date: 03/14/2024
Bananas 1.99
Milk 3.49
Total: $45.67
Thank you for shopping!`

const restaurantReceipt = `SAMCO Restaurant
Kandy Road, Colombo
Bill No: 4471    12/05/2024
ITEM NAME   PRICE   QTY   SUB
Fried Rice 850.00 2 1700.00
Lime Juice 250.00 1 250.00
Sub Total Rs. 1,950.00
Service Charge 195.00
Total Rs. 2,145.00`

var _ = Describe("Parse", func() {
	var (
		rawText string
		result  ParsedReceipt
	)

	JustBeforeEach(func() {
		result = Parse(rawText)
	})

	When("the text is empty", func() {
		BeforeEach(func() {
			rawText = ""
		})

		It("returns the all-defaults receipt", func() {
			Expect(result).To(Equal(ParsedReceipt{
				Items:    []LineItem{},
				Category: Miscellaneous,
				Icon:     DefaultIcon,
			}))
		})
	})

	When("the text is only whitespace", func() {
		BeforeEach(func() {
			rawText = "  \n\t\n   \r\n"
		})

		It("has no vendor", func() {
			Expect(result.VendorName).To(BeEmpty())
		})

		It("has no date", func() {
			Expect(result.Date).To(BeEmpty())
		})

		It("has a zero total", func() {
			Expect(result.TotalAmount).To(BeZero())
		})

		It("falls back to Miscellaneous", func() {
			Expect(result.Category).To(Equal(Miscellaneous))
			Expect(result.Icon).To(Equal(DefaultIcon))
		})
	})

	When("parsing a grocery receipt", func() {
		BeforeEach(func() {
			rawText = groceryReceipt
		})

		It("uses the first line as the vendor", func() {
			Expect(result.VendorName).To(Equal("Fresh Mart Grocers"))
		})

		It("finds the date", func() {
			Expect(result.Date).To(Equal("03/14/2024"))
		})

		It("finds the labeled total", func() {
			Expect(result.TotalAmount).To(BeNumerically("~", 45.67, 1e-9))
		})

		It("has no items", func() {
			Expect(result.Items).To(BeEmpty())
		})

		It("classifies as Groceries", func() {
			Expect(result.Category).To(Equal(Groceries))
		})

		It("uses the cart icon", func() {
			Expect(result.Icon).To(Equal("shopping-cart"))
		})
	})

	When("parsing a restaurant bill with an item table", func() {
		BeforeEach(func() {
			rawText = restaurantReceipt
		})

		It("finds the vendor", func() {
			Expect(result.VendorName).To(Equal("SAMCO Restaurant"))
		})

		It("finds the date", func() {
			Expect(result.Date).To(Equal("12/05/2024"))
		})

		It("takes the first labeled total", func() {
			Expect(result.TotalAmount).To(BeNumerically("~", 1950.00, 1e-9))
		})

		It("reads the item rows", func() {
			Expect(result.Items).To(Equal([]LineItem{
				{Name: "Fried Rice", Price: 850.00, Quantity: 2, Subtotal: 1700.00},
				{Name: "Lime Juice", Price: 250.00, Quantity: 1, Subtotal: 250.00},
			}))
		})

		It("classifies as Food & Dining", func() {
			Expect(result.Category).To(Equal(FoodAndDining))
			Expect(result.Icon).To(Equal("utensils"))
		})
	})

	When("the vendor is a utility with entertainment items", func() {
		BeforeEach(func() {
			rawText = "City Electric Co\nITEM NAME PRICE\nMovie Ticket 12.00 1 12.00\nTotal Rs. 12.00"
		})

		It("lets the vendor keyword win", func() {
			Expect(result.Category).To(Equal(Utilities))
			Expect(result.Icon).To(Equal("lightbulb"))
		})
	})

	When("only the items say what the purchase was", func() {
		BeforeEach(func() {
			rawText = "PVR Cinemas\nITEM NAME   PRICE\nMovie Pass 9.50 2 19.00\nSub Total Rs. 19.00"
		})

		It("classifies as Entertainment", func() {
			Expect(result.Category).To(Equal(Entertainment))
			Expect(result.Icon).To(Equal("ticket"))
		})
	})

	Describe("properties", func() {
		inputs := []string{
			"",
			groceryReceipt,
			restaurantReceipt,
			"Total:\n$",
			"ITEM NAME PRICE\n\n\n",
			"Jan 2, 2024 Total 1,234,567.89",
			"\x00\xff garbage 99.999",
		}

		It("always returns a category and icon from the closed sets", func() {
			knownIcons := []string{"utensils", "shopping-cart", "car", "heartbeat", "bag-shopping", "lightbulb", "ticket", DefaultIcon}
			for _, input := range inputs {
				r := Parse(input)
				Expect(Categories()).To(ContainElement(r.Category))
				Expect(knownIcons).To(ContainElement(r.Icon))
				Expect(r.Items).NotTo(BeNil())
			}
		})

		It("is idempotent", func() {
			for _, input := range inputs {
				Expect(Parse(input)).To(Equal(Parse(input)))
			}
		})
	})
})

var _ = Describe("ParsedReceipt.Draft", func() {
	It("carries icon, category, amount and date", func() {
		draft := Parse(groceryReceipt).Draft()
		Expect(draft).To(Equal(Draft{
			Icon:     "shopping-cart",
			Category: Groceries,
			Amount:   Total(groceryReceipt),
			Date:     "03/14/2024",
		}))
	})
})
