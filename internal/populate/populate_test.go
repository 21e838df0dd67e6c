package populate_test

import (
	"reflect"
	"testing"

	"github.com/goliatone/go-catalog/internal/domain"
	"github.com/goliatone/go-catalog/internal/populate"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		name      string
		requested string
		kind      domain.EntityKind
		want      []domain.Relation
	}{
		{"empty loads nothing", "", domain.KindArticle, nil},
		{"wildcard loads defaults", "*", domain.KindArticle,
			[]domain.Relation{domain.RelationAuthor, domain.RelationCategory, domain.RelationMedia}},
		{"explicit subset", "author,category", domain.KindArticle,
			[]domain.Relation{domain.RelationAuthor, domain.RelationCategory}},
		{"unknown names dropped", "author,bogus,nothing", domain.KindProduct,
			[]domain.Relation{domain.RelationAuthor}},
		{"all unknown resolves to nothing", "bogus,unrelated", domain.KindArticle, nil},
		{"duplicates collapse", "media,media,author", domain.KindProduct,
			[]domain.Relation{domain.RelationMedia, domain.RelationAuthor}},
		{"whitespace and case tolerated", " Author , CATEGORY ", domain.KindArticle,
			[]domain.Relation{domain.RelationAuthor, domain.RelationCategory}},
		{"kind without relations", "*", domain.KindPage, nil},
		{"explicit on kind without relations", "author", domain.KindAuthor, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := populate.Resolve(tc.requested, tc.kind)
			if len(got) == 0 && len(tc.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Resolve(%q, %q) = %v, want %v", tc.requested, tc.kind, got, tc.want)
			}
		})
	}
}

func TestDefaultsAreCopies(t *testing.T) {
	first := populate.Defaults(domain.KindArticle)
	if len(first) == 0 {
		t.Fatal("expected default relations for articles")
	}
	first[0] = domain.Relation("mutated")

	second := populate.Defaults(domain.KindArticle)
	if second[0] == domain.Relation("mutated") {
		t.Fatal("Defaults leaked internal state")
	}
}
