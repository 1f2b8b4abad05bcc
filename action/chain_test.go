package action

import (
	// Stdlib
	"errors"
)

var _ = Describe("Chain", func() {

	record := func(calls *[]string, name string, err error) Action {
		return Func(func() error {
			*calls = append(*calls, name)
			return err
		})
	}

	It("rolls back in reverse order", func() {
		var calls []string
		chain := NewChain()
		chain.Push("", record(&calls, "first", nil))
		chain.Push("Undo second", record(&calls, "second", nil))
		chain.Push("", nil)

		Expect(chain.Len()).To(Equal(2))
		Expect(chain.Rollback()).To(BeNil())
		Expect(calls).To(Equal([]string{"second", "first"}))
		Expect(chain.Len()).To(Equal(0))
	})

	It("keeps going when an action fails", func() {
		var calls []string
		chain := NewChain()
		chain.Push("", record(&calls, "first", nil))
		chain.Push("", record(&calls, "second", errors.New("boom")))

		Expect(chain.Rollback()).To(Equal(ErrRollbackFailed))
		Expect(calls).To(Equal([]string{"second", "first"}))
	})

	It("rolls back only on error", func() {
		var calls []string
		run := func(fail bool) (err error) {
			chain := NewChain()
			defer chain.RollbackOnError(&err)
			chain.Push("", record(&calls, "undo", nil))
			if fail {
				return errors.New("failed")
			}
			return nil
		}

		Expect(run(false)).NotTo(HaveOccurred())
		Expect(calls).To(BeNil())
		Expect(run(true)).To(HaveOccurred())
		Expect(calls).To(Equal([]string{"undo"}))
	})
})
