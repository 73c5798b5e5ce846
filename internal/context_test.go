package internal_test

import (
	"context"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/felixonline247/opolo-cbt-app/internal"
)

func TestInternal(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Internal Suite")
}

var _ = Describe("context helpers", func() {
	Describe("trace id", func() {
		It("round-trips through the context", func() {
			ctx := internal.ContextWithTraceID(context.Background(), "trace-123")
			Expect(internal.TraceIDFromContext(ctx)).To(Equal("trace-123"))
		})

		It("is empty when never set", func() {
			Expect(internal.TraceIDFromContext(context.Background())).To(BeEmpty())
			Expect(internal.TraceIDFromContext(nil)).To(BeEmpty())
		})
	})

	Describe("WithTimeout", func() {
		It("applies the given duration", func() {
			ctx, cancel := internal.WithTimeout(context.Background(), time.Minute)
			defer cancel()

			deadline, ok := ctx.Deadline()
			Expect(ok).To(BeTrue())
			Expect(time.Until(deadline)).To(BeNumerically(">", 50*time.Second))
		})

		It("falls back to a default for non-positive durations", func() {
			ctx, cancel := internal.WithTimeout(context.Background(), 0)
			defer cancel()

			deadline, ok := ctx.Deadline()
			Expect(ok).To(BeTrue())
			Expect(time.Until(deadline)).To(BeNumerically("<=", 5*time.Second))
		})
	})
})
