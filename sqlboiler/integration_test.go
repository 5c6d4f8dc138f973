//go:build integration

package sqlboiler_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nrfta/infinite-paging-go"
	"github.com/nrfta/infinite-paging-go/offset"
	"github.com/nrfta/infinite-paging-go/sqlboiler"
)

var _ = Describe("Infinite scroll over PostgreSQL", func() {
	var paginator *offset.Paginator[string, *Post]

	byAuthor := func(q string) map[string]any {
		if q == "" {
			return nil
		}
		return map[string]any{"author": q}
	}

	BeforeEach(func() {
		Expect(CleanupTables(ctx, container.DB)).To(Succeed())
		Expect(SeedPosts(ctx, container.DB, 25)).To(Succeed())

		fetcher := sqlboiler.NewTableFetcher[*Post](container.DB, "posts")
		paginator = offset.New[string](fetcher, byAuthor,
			paging.OrderBy{Column: "created_at"},
			paging.OrderBy{Column: "id"},
		)
	})

	It("pages through every row in order and ends with an empty page", func() {
		var titles []string
		for index := 0; ; index++ {
			page, err := paginator.Page(ctx, "", 10, index)
			Expect(err).ToNot(HaveOccurred())
			if paging.IsEndOfData(page) {
				Expect(index).To(Equal(3))
				break
			}
			for _, p := range page {
				titles = append(titles, p.Title)
			}
		}

		Expect(titles).To(HaveLen(25))
		Expect(titles[0]).To(Equal("Title - 0"))
		Expect(titles[24]).To(Equal("Title - 24"))
	})

	It("binds nullable columns", func() {
		page, err := paginator.Page(ctx, "", 3, 0)
		Expect(err).ToNot(HaveOccurred())
		Expect(page).To(HaveLen(3))

		Expect(page[0].PublishedAt.Valid).To(BeFalse())
		Expect(page[1].PublishedAt.Valid).To(BeTrue())
		Expect(page[1].Content.String).To(Equal("Content 1"))
	})

	It("filters pages and counts by query", func() {
		page, err := paginator.Page(ctx, "grace", 100, 0)
		Expect(err).ToNot(HaveOccurred())
		Expect(page).To(HaveLen(12))

		total, err := paginator.Total(ctx, "ada")
		Expect(err).ToNot(HaveOccurred())
		Expect(total).To(Equal(int64(13)))
	})

	It("feeds a controller until the end of data", func() {
		opts := paging.DefaultOptions()
		opts.OverridePageSize = 10

		ctrl, err := paging.New[string, *Post](opts, paginator.Page,
			paging.WithFetchTimeout(10*time.Second),
			paging.WithQuery("ada"),
		)
		Expect(err).ToNot(HaveOccurred())
		Expect(ctrl.Start(context.Background(), nil)).To(Succeed())
		defer ctrl.Stop()

		Eventually(func() paging.Status {
			if ctrl.State().Status == paging.StatusIdle {
				ctrl.OnAdvanceEvent()
			}
			return ctrl.State().Status
		}, "10s", "20ms").Should(Equal(paging.StatusEndOfData))

		state := ctrl.State()
		Expect(state.Items).To(HaveLen(13))
		for _, p := range state.Items {
			Expect(p.Author).To(Equal("ada"))
		}
	})
})
