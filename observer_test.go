package paging_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"

	"github.com/nrfta/infinite-paging-go"
)

func decodeLines(buf *bytes.Buffer) []map[string]any {
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		entry := map[string]any{}
		Expect(json.Unmarshal([]byte(line), &entry)).To(Succeed())
		out = append(out, entry)
	}
	return out
}

var _ = Describe("LogObserver", func() {
	var (
		buf      *bytes.Buffer
		observer *paging.LogObserver
	)

	BeforeEach(func() {
		buf = &bytes.Buffer{}
		observer = paging.NewLogObserver(zerolog.New(buf).Level(zerolog.DebugLevel))
	})

	It("logs loaded pages at debug with their fields", func() {
		observer.Observe(paging.Event{
			Kind:      paging.EventPageLoaded,
			Epoch:     2,
			PageIndex: 3,
			PageSize:  9,
			Items:     9,
			Total:     36,
			Status:    paging.StatusIdle,
			Duration:  150 * time.Millisecond,
		})

		lines := decodeLines(buf)
		Expect(lines).To(HaveLen(1))
		Expect(lines[0]).To(HaveKeyWithValue("level", "debug"))
		Expect(lines[0]).To(HaveKeyWithValue("event", "page_loaded"))
		Expect(lines[0]).To(HaveKeyWithValue("epoch", BeNumerically("==", 2)))
		Expect(lines[0]).To(HaveKeyWithValue("page_index", BeNumerically("==", 3)))
		Expect(lines[0]).To(HaveKeyWithValue("items", BeNumerically("==", 9)))
		Expect(lines[0]).To(HaveKeyWithValue("total", BeNumerically("==", 36)))
		Expect(lines[0]).To(HaveKeyWithValue("status", "idle"))
		Expect(lines[0]).To(HaveKey("duration"))
		Expect(lines[0]).To(HaveKeyWithValue("message", "Page loaded"))
	})

	It("logs failures at warn with the error", func() {
		observer.Observe(paging.Event{
			Kind:   paging.EventFetchFailed,
			Status: paging.StatusError,
			Err:    errors.New("connection refused"),
		})

		lines := decodeLines(buf)
		Expect(lines).To(HaveLen(1))
		Expect(lines[0]).To(HaveKeyWithValue("level", "warn"))
		Expect(lines[0]).To(HaveKeyWithValue("error", "connection refused"))
	})

	It("logs lifecycle events at info", func() {
		observer.Observe(paging.Event{Kind: paging.EventEndOfData, Status: paging.StatusEndOfData})
		observer.Observe(paging.Event{Kind: paging.EventReset, Epoch: 1, Status: paging.StatusIdle})

		lines := decodeLines(buf)
		Expect(lines).To(HaveLen(2))
		Expect(lines[0]).To(HaveKeyWithValue("level", "info"))
		Expect(lines[0]).To(HaveKeyWithValue("message", "End of data reached"))
		Expect(lines[1]).To(HaveKeyWithValue("level", "info"))
		Expect(lines[1]).ToNot(HaveKey("items"))
	})

	It("honours the logger level", func() {
		observer = paging.NewLogObserver(zerolog.New(buf).Level(zerolog.InfoLevel))
		observer.Observe(paging.Event{Kind: paging.EventAdvanceDropped, Status: paging.StatusLoading})

		Expect(buf.Len()).To(BeZero())
	})
})

var _ = Describe("MultiObserver", func() {
	It("delivers each event to every observer and skips nil ones", func() {
		first, second := &recorder{}, &recorder{}
		multi := paging.MultiObserver(first, nil, second)

		multi.Observe(paging.Event{Kind: paging.EventStarted})
		multi.Observe(paging.Event{Kind: paging.EventDispatched})

		Expect(first.count(paging.EventStarted)).To(Equal(1))
		Expect(second.count(paging.EventDispatched)).To(Equal(1))
	})

	It("accepts plain functions", func() {
		var kinds []paging.EventKind
		multi := paging.MultiObserver(paging.ObserverFunc(func(e paging.Event) {
			kinds = append(kinds, e.Kind)
		}))

		multi.Observe(paging.Event{Kind: paging.EventReset})

		Expect(kinds).To(Equal([]paging.EventKind{paging.EventReset}))
	})
})
