package parsing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Classify", func() {
	DescribeTable("vendor keywords",
		func(vendor, expected string) {
			Expect(Classify(vendor, nil)).To(Equal(expected))
		},
		Entry("grocery", "Corner GROCERY", Groceries),
		Entry("supermart", "Keells Supermart", Groceries),
		Entry("market", "Farmers Market", Groceries),
		Entry("cafe", "Blue Cafe", FoodAndDining),
		Entry("hotel", "Hotel Galadari", FoodAndDining),
		Entry("fuel", "Ceypetco Fuel Station", Transportation),
		Entry("pharmacy", "Union Pharmacy", Health),
		Entry("boutique", "Ella Boutique", Shopping),
		Entry("internet", "Fiber Internet Ltd", Utilities),
		Entry("water", "Water Board", Utilities),
		Entry("nothing", "ACME Corp", Miscellaneous),
		Entry("empty", "", Miscellaneous),
	)

	It("breaks ties by priority order, not specificity", func() {
		Expect(Classify("Fresh Cafe Restaurant", nil)).To(Equal(Groceries))
		Expect(Classify("Hotel Gas Station", nil)).To(Equal(FoodAndDining))
		Expect(Classify("Hospital Water Supply", nil)).To(Equal(Health))
	})

	It("uses vendor keywords before item keywords", func() {
		items := []LineItem{{Name: "Movie Ticket"}}
		Expect(Classify("City Electric Co", items)).To(Equal(Utilities))
	})

	It("falls back to item names", func() {
		items := []LineItem{{Name: "Popcorn"}, {Name: "ENTERTAINMENT PASS"}}
		Expect(Classify("Cineplex", items)).To(Equal(Entertainment))
	})

	It("does not use vendor names for entertainment", func() {
		Expect(Classify("Movie Palace", nil)).To(Equal(Miscellaneous))
	})
})

var _ = Describe("Icon", func() {
	DescribeTable("maps categories to icons",
		func(category, expected string) {
			Expect(Icon(category)).To(Equal(expected))
		},
		Entry(FoodAndDining, FoodAndDining, "utensils"),
		Entry(Groceries, Groceries, "shopping-cart"),
		Entry(Transportation, Transportation, "car"),
		Entry(Health, Health, "heartbeat"),
		Entry(Shopping, Shopping, "bag-shopping"),
		Entry(Utilities, Utilities, "lightbulb"),
		Entry(Entertainment, Entertainment, "ticket"),
		Entry(Miscellaneous, Miscellaneous, DefaultIcon),
		Entry("Travel", "Travel", DefaultIcon),
	)
})

var _ = Describe("Categories", func() {
	It("lists the closed set in priority order", func() {
		Expect(Categories()).To(Equal([]string{
			Groceries, FoodAndDining, Transportation, Health, Shopping, Utilities, Entertainment, Miscellaneous,
		}))
	})
})
