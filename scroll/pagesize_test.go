package scroll_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nrfta/infinite-paging-go/scroll"
)

var _ = Describe("OptimalPageSize", func() {
	DescribeTable("rounds 1.1 viewports of rows half-up",
		func(area, row float64, expected int) {
			size, err := scroll.OptimalPageSize(area, row)
			Expect(err).ToNot(HaveOccurred())
			Expect(size).To(Equal(expected))
		},
		Entry("800/100", 800.0, 100.0, 9),
		Entry("1000/100", 1000.0, 100.0, 11),
		Entry("450/100", 450.0, 100.0, 5),
		Entry("400/100", 400.0, 100.0, 4),
		Entry("300/40", 300.0, 40.0, 8),
		Entry("window", 0.0, 100.0, 0),
	)

	It("rejects non-positive row heights", func() {
		_, err := scroll.OptimalPageSize(800, 0)
		Expect(err).To(MatchError(scroll.ErrInvalidRowHeight))

		_, err = scroll.OptimalPageSize(800, -5)
		Expect(err).To(MatchError(scroll.ErrInvalidRowHeight))
	})
})

var _ = Describe("SkeletonCount", func() {
	DescribeTable("sizes the loading placeholders",
		func(pageSize int, style scroll.LoaderStyle, expected int) {
			Expect(scroll.SkeletonCount(pageSize, style)).To(Equal(expected))
		},
		Entry("single", 9, scroll.LoaderSingle, 1),
		Entry("unset style", 9, scroll.LoaderStyle(""), 1),
		Entry("many", 9, scroll.LoaderMany, 4),
		Entry("many with an even page", 50, scroll.LoaderMany, 25),
		Entry("empty page", 0, scroll.LoaderMany, 0),
	)

	It("validates styles", func() {
		Expect(scroll.LoaderMany.Valid()).To(BeTrue())
		Expect(scroll.LoaderStyle("").Valid()).To(BeTrue())
		Expect(scroll.LoaderStyle("grid").Valid()).To(BeFalse())
	})
})
