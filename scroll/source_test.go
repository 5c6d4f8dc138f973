package scroll_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nrfta/infinite-paging-go/scroll"
)

var _ = Describe("Source", func() {
	It("buffers samples in order", func() {
		source := scroll.NewSource(2)
		first := scroll.Sample{ScrollTop: 1}
		second := scroll.Sample{ScrollTop: 2}

		Expect(source.Push(first)).To(BeTrue())
		Expect(source.Push(second)).To(BeTrue())

		Expect(source.Samples()).To(Receive(Equal(first)))
		Expect(source.Samples()).To(Receive(Equal(second)))
	})

	It("drops samples when the buffer is full", func() {
		source := scroll.NewSource(1)

		Expect(source.Push(scroll.Sample{})).To(BeTrue())
		Expect(source.Push(scroll.Sample{})).To(BeFalse())
	})

	It("uses the default buffer for a non-positive size", func() {
		source := scroll.NewSource(0)

		for i := 0; i < scroll.DefaultSourceBuffer; i++ {
			Expect(source.Push(scroll.Sample{})).To(BeTrue())
		}
		Expect(source.Push(scroll.Sample{})).To(BeFalse())
	})

	It("closes the stream once", func() {
		source := scroll.NewSource(1)

		Expect(source.Close()).To(Succeed())
		Expect(source.Close()).To(Succeed())
		Expect(source.Push(scroll.Sample{})).To(BeFalse())
		Expect(source.Samples()).To(BeClosed())
	})
})
