package repository_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/videoclub/rental/internal/database"
	"github.com/videoclub/rental/internal/model"
	"github.com/videoclub/rental/internal/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func TestMovieRepo_SaveInsertsAndUpdates(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewMovieRepoGorm(db)

	movie := model.Movie{Title: "Inception", Year: 2010}
	if err := repo.Save(&movie); err != nil {
		t.Fatalf("Save (insert) failed: %v", err)
	}
	if movie.ID == 0 {
		t.Fatal("Save did not assign an id")
	}

	movie.Genre = "Ciencia Ficción"
	if err := repo.Save(&movie); err != nil {
		t.Fatalf("Save (update) failed: %v", err)
	}

	got, err := repo.GetByID(movie.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Genre != "Ciencia Ficción" {
		t.Errorf("genre = %q, want Ciencia Ficción", got.Genre)
	}

	n, err := repo.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("count = %d, want 1 (update must not insert)", n)
	}
}

func TestMovieRepo_GetByIDMissing(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewMovieRepoGorm(db)

	_, err := repo.GetByID(99)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("err = %v, want gorm.ErrRecordNotFound", err)
	}
}

func TestMovieRepo_DeleteByID(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewMovieRepoGorm(db)

	movie := model.Movie{Title: "Memento", Year: 2000}
	if err := repo.Save(&movie); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := repo.DeleteByID(movie.ID); err != nil {
		t.Fatalf("DeleteByID failed: %v", err)
	}
	if n, _ := repo.Count(); n != 0 {
		t.Errorf("count after delete = %d, want 0", n)
	}
}

func TestCopyRepo_AvailableOrdering(t *testing.T) {
	db := newTestDB(t)
	movieRepo := repository.NewMovieRepoGorm(db)
	copyRepo := repository.NewCopyRepoGorm(db)

	movie := model.Movie{Title: "Inception", Year: 2010}
	if err := movieRepo.Save(&movie); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	var ids []uint
	for i := 0; i < 3; i++ {
		c := model.Copy{MovieID: movie.ID, Status: model.CopyStatusAvailable, Medium: "DVD"}
		if err := copyRepo.Save(&c); err != nil {
			t.Fatalf("Save copy failed: %v", err)
		}
		ids = append(ids, c.ID)
	}

	// assign the middle copy, the rest stay available
	userRepo := repository.NewUserRepoGorm(db)
	user := model.User{Username: "user1", HashedPassword: "x"}
	if err := userRepo.Save(&user); err != nil {
		t.Fatalf("Save user failed: %v", err)
	}
	mid, err := copyRepo.GetByID(ids[1])
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	mid.UserID = &user.ID
	mid.Status = model.CopyStatusRented
	if err := copyRepo.Save(mid); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	available, err := copyRepo.GetAvailableByMovieID(movie.ID)
	if err != nil {
		t.Fatalf("GetAvailableByMovieID failed: %v", err)
	}
	if len(available) != 2 {
		t.Fatalf("available = %d, want 2", len(available))
	}
	if available[0].ID != ids[0] || available[1].ID != ids[2] {
		t.Errorf("available order = [%d %d], want [%d %d]",
			available[0].ID, available[1].ID, ids[0], ids[2])
	}

	got, err := copyRepo.GetByUserID(user.ID)
	if err != nil {
		t.Fatalf("GetByUserID failed: %v", err)
	}
	if got.ID != ids[1] {
		t.Errorf("GetByUserID = %d, want %d", got.ID, ids[1])
	}
}

func TestCopyRepo_DeleteByMovieID(t *testing.T) {
	db := newTestDB(t)
	movieRepo := repository.NewMovieRepoGorm(db)
	copyRepo := repository.NewCopyRepoGorm(db)

	keep := model.Movie{Title: "Memento", Year: 2000}
	drop := model.Movie{Title: "Inception", Year: 2010}
	for _, m := range []*model.Movie{&keep, &drop} {
		if err := movieRepo.Save(m); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		for i := 0; i < 2; i++ {
			c := model.Copy{MovieID: m.ID, Status: model.CopyStatusAvailable, Medium: "DVD"}
			if err := copyRepo.Save(&c); err != nil {
				t.Fatalf("Save copy failed: %v", err)
			}
		}
	}

	if err := copyRepo.DeleteByMovieID(drop.ID); err != nil {
		t.Fatalf("DeleteByMovieID failed: %v", err)
	}

	all, err := copyRepo.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("copies remaining = %d, want 2", len(all))
	}
	for _, c := range all {
		if c.MovieID != keep.ID {
			t.Errorf("copy %d references movie %d, want %d", c.ID, c.MovieID, keep.ID)
		}
	}
}

func TestUserRepo_GetByUsername(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewUserRepoGorm(db)

	user := model.User{Username: "admin1", HashedPassword: "x", Admin: true}
	if err := repo.Save(&user); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := repo.GetByUsername("admin1")
	if err != nil {
		t.Fatalf("GetByUsername failed: %v", err)
	}
	if got.ID != user.ID || !got.Admin {
		t.Errorf("got %+v, want saved admin", got)
	}

	if _, err := repo.GetByUsername("ghost"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("err = %v, want gorm.ErrRecordNotFound", err)
	}
}

func TestUserRepo_GetByIDWithRental(t *testing.T) {
	db := newTestDB(t)
	movieRepo := repository.NewMovieRepoGorm(db)
	copyRepo := repository.NewCopyRepoGorm(db)
	userRepo := repository.NewUserRepoGorm(db)

	movie := model.Movie{Title: "Inception", Year: 2010}
	if err := movieRepo.Save(&movie); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	user := model.User{Username: "user1", HashedPassword: "x"}
	if err := userRepo.Save(&user); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	c := model.Copy{MovieID: movie.ID, UserID: &user.ID, Status: model.CopyStatusRented, Medium: "DVD"}
	if err := copyRepo.Save(&c); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := userRepo.GetByIDWithRental(user.ID)
	if err != nil {
		t.Fatalf("GetByIDWithRental failed: %v", err)
	}
	if got.AssignedCopy == nil || got.AssignedCopy.ID != c.ID {
		t.Fatalf("AssignedCopy = %+v, want copy %d", got.AssignedCopy, c.ID)
	}
	if got.AssignedCopy.Movie == nil || got.AssignedCopy.Movie.Title != "Inception" {
		t.Errorf("AssignedCopy.Movie = %+v, want Inception", got.AssignedCopy.Movie)
	}
}

func TestRentalLogRepo(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewRentalLogRepoGorm(db)

	for _, action := range []model.RentalAction{model.RentalActionRented, model.RentalActionReturned} {
		entry := model.RentalLog{CopyID: 1, MovieID: 1, UserID: 1, Action: action}
		if err := repo.Create(&entry); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	entries, err := repo.GetByUserID(1)
	if err != nil {
		t.Fatalf("GetByUserID failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Action != model.RentalActionRented {
		t.Errorf("first action = %q, want RENTED", entries[0].Action)
	}

	n, err := repo.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 2 {
		t.Errorf("count = %d, want 2", n)
	}
}
