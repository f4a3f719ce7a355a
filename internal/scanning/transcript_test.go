package scanning

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("cleanTranscript", func() {
	DescribeTable("strips fences and whitespace",
		func(input, expected string) {
			Expect(cleanTranscript(input)).To(Equal(expected))
		},
		Entry("plain text", "  Fresh Mart\nTotal 4.00\n", "Fresh Mart\nTotal 4.00"),
		Entry("fenced", "```\nFresh Mart\nTotal 4.00\n```", "Fresh Mart\nTotal 4.00"),
		Entry("fenced with a language tag", "```text\nFresh Mart\n```", "Fresh Mart"),
		Entry("unterminated fence", "```\nFresh Mart", "Fresh Mart"),
		Entry("empty", "   ", ""),
	)
})
