package config_test

import (
	"context"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nrfta/infinite-paging-go"
	"github.com/nrfta/infinite-paging-go/config"
	"github.com/nrfta/infinite-paging-go/logging"
	"github.com/nrfta/infinite-paging-go/scroll"
)

var _ = Describe("Config", func() {
	var (
		dir  string
		path string
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		path = filepath.Join(dir, "config.toml")
	})

	write := func(body string) {
		Expect(os.WriteFile(path, []byte(body), 0644)).To(Succeed())
	}

	Describe("Load", func() {
		It("returns the defaults when the file is missing", func() {
			cfg, err := config.Load(path)

			Expect(err).ToNot(HaveOccurred())
			Expect(cfg.Paging).To(Equal(config.DefaultConfig().Paging))
			Expect(cfg.Source.Total).To(Equal(500))
			Expect(cfg.Source.Delay).To(Equal(2 * time.Second))
		})

		It("overrides only the keys present in the file", func() {
			write(`
[paging]
scroll_percent = 85
loader_style = "many"

[log]
level = "debug"

[cache]
addr = "localhost:6379"
ttl = "30s"
`)

			cfg, err := config.Load(path)

			Expect(err).ToNot(HaveOccurred())
			Expect(cfg.Paging.ScrollPercent).To(Equal(85.0))
			Expect(cfg.Paging.LoaderStyle).To(Equal(scroll.LoaderMany))
			Expect(cfg.Paging.OverridePageSize).To(Equal(50))
			Expect(cfg.Paging.AutoLoadFirstPage).To(BeTrue())
			Expect(cfg.Log.Level).To(Equal(logging.LevelDebug))
			Expect(cfg.Cache.Enabled()).To(BeTrue())
			Expect(cfg.Cache.TTL).To(Equal(30 * time.Second))
			Expect(cfg.Cache.Prefix).To(Equal("scrolldemo"))
		})

		It("returns the defaults and an error for malformed TOML", func() {
			write(`[paging`)

			cfg, err := config.Load(path)

			Expect(err).To(MatchError(ContainSubstring("failed to parse config file")))
			Expect(cfg.Paging).To(Equal(config.DefaultConfig().Paging))
		})

		It("rejects invalid paging options", func() {
			write(`
[paging]
scroll_percent = 150
`)

			_, err := config.Load(path)

			Expect(err).To(HaveOccurred())
			Expect(paging.IsConfigError(err)).To(BeTrue())
		})
	})

	Describe("Save", func() {
		It("writes a file that loads back to the same settings", func() {
			cfg := config.DefaultConfig()
			cfg.Paging.ScrollPercent = 90
			cfg.Paging.RowHeight = 24
			cfg.Cache.Addr = "redis:6379"

			nested := filepath.Join(dir, "nested", "config.toml")
			Expect(config.Save(nested, cfg)).To(Succeed())

			loaded, err := config.Load(nested)
			Expect(err).ToNot(HaveOccurred())
			Expect(loaded.Paging).To(Equal(cfg.Paging))
			Expect(loaded.Cache).To(Equal(cfg.Cache))
			Expect(loaded.Source).To(Equal(cfg.Source))
		})
	})

	Describe("Watch", func() {
		It("reloads the file after it is written", func() {
			write("[paging]\nscroll_percent = 70\n")

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			reloads := make(chan config.Config, 4)
			done := make(chan error, 1)
			go func() {
				done <- config.Watch(ctx, path, func(cfg config.Config, err error) {
					if err == nil {
						reloads <- cfg
					}
				})
			}()

			Eventually(func() float64 {
				write("[paging]\nscroll_percent = 80\n")
				select {
				case cfg := <-reloads:
					return cfg.Paging.ScrollPercent
				case <-time.After(300 * time.Millisecond):
					return 0
				}
			}, "5s").Should(Equal(80.0))

			cancel()
			Eventually(done).Should(Receive(BeNil()))
		})

		It("ignores other files in the directory", func() {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			called := make(chan struct{}, 1)
			go config.Watch(ctx, path, func(config.Config, error) {
				called <- struct{}{}
			})

			Expect(os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x = 1"), 0644)).To(Succeed())
			Consistently(called, "300ms").ShouldNot(Receive())
		})
	})
})
