package dimension_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/frahmantamala/talento-plus/internal/dimension"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestDimension(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Dimension Suite")
}

type mockRepository struct {
	mu        sync.Mutex
	rows      map[dimension.Kind][]*dimension.Dimension
	nextID    int64
	finds     int
	creates   int
	createErr error
}

func newMockRepository() *mockRepository {
	return &mockRepository{rows: map[dimension.Kind][]*dimension.Dimension{}}
}

func (m *mockRepository) seed(kind dimension.Kind, name string) int64 {
	m.nextID++
	m.rows[kind] = append(m.rows[kind], &dimension.Dimension{ID: m.nextID, Kind: kind, Name: name})
	return m.nextID
}

func (m *mockRepository) FindByName(ctx context.Context, kind dimension.Kind, name string) (*dimension.Dimension, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finds++
	for _, d := range m.rows[kind] {
		if strings.EqualFold(d.Name, strings.TrimSpace(name)) {
			return d, nil
		}
	}
	return nil, nil
}

func (m *mockRepository) GetByID(ctx context.Context, kind dimension.Kind, id int64) (*dimension.Dimension, error) {
	for _, d := range m.rows[kind] {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, nil
}

func (m *mockRepository) Create(ctx context.Context, kind dimension.Kind, name string) (*dimension.Dimension, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.creates++
	m.nextID++
	d := &dimension.Dimension{ID: m.nextID, Kind: kind, Name: name}
	m.rows[kind] = append(m.rows[kind], d)
	return d, nil
}

func (m *mockRepository) ListByKind(ctx context.Context, kind dimension.Kind) ([]*dimension.Dimension, error) {
	return m.rows[kind], nil
}

var _ = Describe("Reconciler", func() {
	var (
		repo *mockRepository
		rec  *dimension.Reconciler
		ctx  context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		repo = newMockRepository()
		rec = dimension.NewReconciler(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	It("creates a missing name once and reuses it for later rows", func() {
		first, err := rec.Resolve(ctx, dimension.KindJobTitle, "Desarrollador")
		Expect(err).NotTo(HaveOccurred())

		second, err := rec.Resolve(ctx, dimension.KindJobTitle, "Desarrollador")
		Expect(err).NotTo(HaveOccurred())

		Expect(second).To(Equal(first))
		Expect(repo.creates).To(Equal(1))
		Expect(rec.Created()).To(Equal(1))
	})

	It("matches existing names case-insensitively", func() {
		id := repo.seed(dimension.KindDepartment, "IT")

		got, err := rec.Resolve(ctx, dimension.KindDepartment, "  it ")
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(id))
		Expect(repo.creates).To(BeZero())
		Expect(rec.Created()).To(BeZero())
	})

	It("answers repeated lookups from its overlay", func() {
		repo.seed(dimension.KindDepartment, "Ventas")
		_, _ = rec.Resolve(ctx, dimension.KindDepartment, "Ventas")
		_, _ = rec.Resolve(ctx, dimension.KindDepartment, "VENTAS")
		Expect(repo.finds).To(Equal(1))
	})

	It("keeps kinds apart", func() {
		a, _ := rec.Resolve(ctx, dimension.KindJobTitle, "General")
		b, _ := rec.Resolve(ctx, dimension.KindDepartment, "General")
		Expect(a).NotTo(Equal(b))
		Expect(rec.Created()).To(Equal(2))
	})

	It("rejects empty names without touching the store", func() {
		_, err := rec.Resolve(ctx, dimension.KindEducationLevel, "   ")
		Expect(errors.Is(err, dimension.ErrEmptyName)).To(BeTrue())
		Expect(repo.finds).To(BeZero())
	})

	It("rejects unknown kinds", func() {
		_, err := rec.Resolve(ctx, dimension.Kind("shift"), "Night")
		Expect(errors.Is(err, dimension.ErrUnknownKind)).To(BeTrue())
	})

	It("propagates store failures without remembering the name", func() {
		repo.createErr = errors.New("db down")
		_, err := rec.Resolve(ctx, dimension.KindJobTitle, "Analista")
		Expect(err).To(MatchError(ContainSubstring("db down")))

		repo.createErr = nil
		_, err = rec.Resolve(ctx, dimension.KindJobTitle, "Analista")
		Expect(err).NotTo(HaveOccurred())
		Expect(rec.Created()).To(Equal(1))
	})

	It("serializes concurrent resolutions of the same name", func() {
		var wg sync.WaitGroup
		ids := make([]int64, 16)
		for i := range ids {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				ids[i], _ = rec.Resolve(ctx, dimension.KindJobTitle, "Contador")
			}(i)
		}
		wg.Wait()
		for _, id := range ids {
			Expect(id).To(Equal(ids[0]))
		}
		Expect(repo.creates).To(Equal(1))
	})
})

var _ = Describe("ParseKind", func() {
	DescribeTable("route forms",
		func(in string, want dimension.Kind) {
			got, err := dimension.ParseKind(in)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(want))
		},
		Entry("canonical", "job_title", dimension.KindJobTitle),
		Entry("plural", "departments", dimension.KindDepartment),
		Entry("spanish", "Cargos", dimension.KindJobTitle),
		Entry("education", "education_levels", dimension.KindEducationLevel),
	)

	It("rejects anything else", func() {
		_, err := dimension.ParseKind("shifts")
		Expect(errors.Is(err, dimension.ErrUnknownKind)).To(BeTrue())
	})
})
