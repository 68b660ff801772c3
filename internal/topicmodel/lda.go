package topicmodel

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/mathext"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/custodia-labs/sercha-topics/internal/core/domain"
	"github.com/custodia-labs/sercha-topics/internal/core/ports/driven"
)

// Ensure LDA implements the interface.
var _ driven.TopicModel = (*LDA)(nil)

// Default fitting parameters.
const (
	DefaultMaxIter          = 10
	DefaultMaxDocUpdateIter = 100
	DefaultMeanChangeTol    = 1e-3

	// Shape and rate of the Gamma draws used for initialisation.
	initShape = 100.0
	initRate  = 100.0
)

// epsilon keeps normalisers away from zero.
var epsilon = math.Nextafter(1, 2) - 1

// LDA fits latent Dirichlet allocation with batch variational Bayes.
type LDA struct {
	// DocTopicPrior is alpha. Zero means 1/topics.
	DocTopicPrior float64

	// TopicWordPrior is eta. Zero means 1/topics.
	TopicWordPrior float64

	// MaxDocUpdateIter bounds the per-document E-step.
	MaxDocUpdateIter int

	// MeanChangeTol stops the per-document E-step early.
	MeanChangeTol float64
}

// NewLDA creates an LDA model with default parameters.
func NewLDA() *LDA {
	return &LDA{
		MaxDocUpdateIter: DefaultMaxDocUpdateIter,
		MeanChangeTol:    DefaultMeanChangeTol,
	}
}

// Fit fits the model over m and returns normalised document-topic rows and
// the top params.TopWords terms of each topic.
func (l *LDA) Fit(ctx context.Context, m *domain.TermMatrix, params domain.TopicParams) (*domain.TopicFit, error) {
	docs := m.NumDocuments()
	if params.Topics < 1 || params.Topics > docs {
		return nil, fmt.Errorf("%w: %d topics requested for %d documents", domain.ErrInvalidTopicCount, params.Topics, docs)
	}
	if m.NumTerms() == 0 {
		return nil, domain.ErrEmptyVocabulary
	}

	k, v := params.Topics, m.NumTerms()
	alpha := l.DocTopicPrior
	if alpha <= 0 {
		alpha = 1 / float64(k)
	}
	eta := l.TopicWordPrior
	if eta <= 0 {
		eta = 1 / float64(k)
	}
	maxIter := params.MaxIter
	if maxIter <= 0 {
		maxIter = DefaultMaxIter
	}
	topWords := params.TopWords
	if topWords <= 0 {
		topWords = params.Topics
	}

	gamma := distuv.Gamma{
		Alpha: initShape,
		Beta:  initRate,
		Src:   rand.NewPCG(params.Seed, params.Seed),
	}

	lambda := mat.NewDense(k, v, nil)
	for t := 0; t < k; t++ {
		for w := 0; w < v; w++ {
			lambda.Set(t, w, gamma.Rand())
		}
	}

	for iter := 0; iter < maxIter; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		expElog := expDirichletExpectation(lambda)
		sstats := mat.NewDense(k, v, nil)
		for _, row := range m.Rows {
			init := make([]float64, k)
			for t := range init {
				init[t] = gamma.Rand()
			}
			l.updateDocument(row, expElog, init, alpha, sstats)
		}

		// M-step: lambda = eta + sstats * exp(E[log beta]).
		lambda.MulElem(sstats, expElog)
		lambda.Apply(func(_, _ int, x float64) float64 { return x + eta }, lambda)
	}

	expElog := expDirichletExpectation(lambda)
	docTopics := make([][]float64, docs)
	for d, row := range m.Rows {
		init := make([]float64, k)
		for t := range init {
			init[t] = 1
		}
		dist := l.updateDocument(row, expElog, init, alpha, nil)
		floats.Scale(1/floats.Sum(dist), dist)
		docTopics[d] = dist
	}

	return &domain.TopicFit{
		DocumentTopics: docTopics,
		TopicWords:     rankTopicWords(lambda, m.Vocabulary, topWords),
	}, nil
}

// updateDocument runs the variational E-step for one document, starting from
// docTopic. When sstats is non-nil the document's sufficient statistics are
// added to it. Returns the final variational topic parameters.
func (l *LDA) updateDocument(
	row []domain.TermCount,
	expElog *mat.Dense,
	docTopic []float64,
	alpha float64,
	sstats *mat.Dense,
) []float64 {
	k := len(docTopic)
	expDocTopic := expDirichletRow(docTopic)
	normPhi := make([]float64, len(row))
	computeNormPhi(row, expElog, expDocTopic, normPhi)

	maxIter := l.MaxDocUpdateIter
	if maxIter <= 0 {
		maxIter = DefaultMaxDocUpdateIter
	}
	tol := l.MeanChangeTol
	if tol <= 0 {
		tol = DefaultMeanChangeTol
	}

	last := make([]float64, k)
	for iter := 0; iter < maxIter; iter++ {
		copy(last, docTopic)
		for t := 0; t < k; t++ {
			var acc float64
			for j, tc := range row {
				acc += tc.Count / normPhi[j] * expElog.At(t, tc.Term)
			}
			docTopic[t] = expDocTopic[t]*acc + alpha
		}
		expDocTopic = expDirichletRow(docTopic)
		computeNormPhi(row, expElog, expDocTopic, normPhi)

		if floats.Distance(last, docTopic, 1)/float64(k) < tol {
			break
		}
	}

	if sstats != nil {
		for t := 0; t < k; t++ {
			for j, tc := range row {
				sstats.Set(t, tc.Term, sstats.At(t, tc.Term)+expDocTopic[t]*tc.Count/normPhi[j])
			}
		}
	}
	return docTopic
}

func computeNormPhi(row []domain.TermCount, expElog *mat.Dense, expDocTopic, out []float64) {
	for j, tc := range row {
		var s float64
		for t, e := range expDocTopic {
			s += e * expElog.At(t, tc.Term)
		}
		out[j] = s + epsilon
	}
}

// expDirichletRow returns exp(E[log theta]) for theta ~ Dirichlet(params).
func expDirichletRow(params []float64) []float64 {
	out := make([]float64, len(params))
	psiSum := mathext.Digamma(floats.Sum(params))
	for i, p := range params {
		out[i] = math.Exp(mathext.Digamma(p) - psiSum)
	}
	return out
}

// expDirichletExpectation applies expDirichletRow to every row of m.
func expDirichletExpectation(m *mat.Dense) *mat.Dense {
	rows, cols := m.Dims()
	out := mat.NewDense(rows, cols, nil)
	for r := 0; r < rows; r++ {
		out.SetRow(r, expDirichletRow(m.RawRowView(r)))
	}
	return out
}

// rankTopicWords returns the n highest-weight terms of each topic row.
// Equal weights keep vocabulary order.
func rankTopicWords(weights *mat.Dense, vocabulary []string, n int) [][]string {
	topics, terms := weights.Dims()
	if n > terms {
		n = terms
	}
	out := make([][]string, topics)
	for t := 0; t < topics; t++ {
		row := weights.RawRowView(t)
		order := make([]int, terms)
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool { return row[order[a]] > row[order[b]] })

		words := make([]string, n)
		for i := 0; i < n; i++ {
			words[i] = vocabulary[order[i]]
		}
		out[t] = words
	}
	return out
}
