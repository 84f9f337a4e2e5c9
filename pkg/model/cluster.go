package model

import (
	"context"
	"slices"
	"sort"
	"strings"

	"github.com/yumyai/phamfasta/logger"
	"go.uber.org/zap"
)

// ClusterLister lists the distinct concrete cluster ids starting with prefix.
type ClusterLister interface {
	Clusters(ctx context.Context, prefix string) ([]string, error)
}

// ExpandCluster returns every cluster in clusters that starts with token,
// sorted and without duplicates. The Singleton token never expands.
func ExpandCluster(token string, clusters []string) []string {
	if token == SingletonCluster {
		return nil
	}
	var out []string
	for _, c := range clusters {
		if strings.HasPrefix(c, token) {
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return slices.Compact(out)
}

// ClusterExpansion is the cluster axis of a selection after expansion.
type ClusterExpansion struct {
	Clusters  []string // concrete ids, sorted, unique
	Singleton bool     // "Singleton" was requested
}

func (e ClusterExpansion) Empty() bool {
	return len(e.Clusters) == 0 && !e.Singleton
}

// ClusterExpander resolves cluster tokens against the repository.
type ClusterExpander struct {
	Source ClusterLister
}

// Expand resolves every token. Tokens matching nothing are logged and
// otherwise ignored.
func (x *ClusterExpander) Expand(ctx context.Context, tokens []string) (ClusterExpansion, error) {
	var exp ClusterExpansion
	for _, token := range tokens {
		if token == SingletonCluster {
			exp.Singleton = true
			continue
		}
		known, err := x.Source.Clusters(ctx, token)
		if err != nil {
			return ClusterExpansion{}, &RepositoryError{Op: "list clusters " + token, Err: err}
		}
		matched := ExpandCluster(token, known)
		if len(matched) == 0 {
			logger.Warn("Cluster token matched nothing", zap.String("token", token))
			continue
		}
		exp.Clusters = append(exp.Clusters, matched...)
	}
	sort.Strings(exp.Clusters)
	exp.Clusters = slices.Compact(exp.Clusters)
	return exp, nil
}
