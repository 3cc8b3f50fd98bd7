package feedback

import (
	"context"
	"testing"
	"time"

	"github.com/yungbote/sotfinder-backend/internal/data/repos/testutil"
	types "github.com/yungbote/sotfinder-backend/internal/domain"
	"github.com/yungbote/sotfinder-backend/internal/pkg/dbctx"
)

func TestFeedbackRepo(t *testing.T) {
	db := testutil.DB(t)
	dbc := dbctx.Context{Ctx: context.Background()}
	repo := NewFeedbackRepo(db, testutil.Logger(t))

	old := time.Now().UTC().Add(-time.Hour)
	rows, err := repo.Create(dbc, []*types.Feedback{
		{Message: "Love it", Category: "experience", CreatedAt: old},
		{Message: "Broken link", Category: "bug", Context: "/java"},
	})
	if err != nil || len(rows) != 2 || rows[0].ID.String() == "" {
		t.Fatalf("Create: err=%v", err)
	}

	all, err := repo.ListRecent(dbc, "", 0)
	if err != nil || len(all) != 2 || all[0].Message != "Broken link" {
		t.Fatalf("ListRecent: err=%v rows=%d", err, len(all))
	}
	bugs, err := repo.ListRecent(dbc, "bug", 10)
	if err != nil || len(bugs) != 1 || bugs[0].Context != "/java" {
		t.Fatalf("ListRecent bug: err=%v rows=%d", err, len(bugs))
	}
}
