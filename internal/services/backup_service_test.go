package services

import (
	"encoding/json"
	"testing"

	"centime/internal/categorize"
	"centime/internal/models"
	"centime/internal/testutil"
	"centime/internal/vault"
)

func TestBackupExportImport(t *testing.T) {
	t.Run("round_trip", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBackupService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestAnalysis(t, db, user.ID)
		testutil.CreateTestBudget(t, db, user.ID, categorize.CategoryGroceries, 400)
		testutil.CreateTestPreference(t, db, user.ID, "pie_chart", "enabled")

		env, err := svc.Export(user.ID, "backup-password")
		testutil.AssertNoError(t, err)

		raw, err := json.Marshal(env)
		testutil.AssertNoError(t, err)

		summary, err := svc.Import(user.ID, raw, "backup-password")
		testutil.AssertNoError(t, err)

		if summary.Analyses != 1 || summary.Budgets != 1 || summary.ChartPreferences != 1 {
			t.Errorf("unexpected import summary: %+v", summary)
		}

		var count int64
		db.Model(&models.Analysis{}).Where("user_id = ?", user.ID).Count(&count)
		if count != 1 {
			t.Errorf("expected 1 analysis after restore, got %d", count)
		}
	})

	t.Run("import_replaces_existing_data", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBackupService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestAnalysis(t, db, user.ID)

		env, err := svc.Export(user.ID, "pw123456")
		testutil.AssertNoError(t, err)
		raw, err := json.Marshal(env)
		testutil.AssertNoError(t, err)

		// New data created after the export must be gone after restore.
		testutil.CreateTestAnalysis(t, db, user.ID)
		testutil.CreateTestAnalysis(t, db, user.ID)

		summary, err := svc.Import(user.ID, raw, "pw123456")
		testutil.AssertNoError(t, err)
		if summary.Analyses != 1 {
			t.Fatalf("expected 1 restored analysis, got %d", summary.Analyses)
		}

		var count int64
		db.Model(&models.Analysis{}).Where("user_id = ?", user.ID).Count(&count)
		if count != 1 {
			t.Errorf("restore must replace, not append: %d analyses", count)
		}
	})

	t.Run("wrong_password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBackupService(db)
		user := testutil.CreateTestUser(t, db)

		env, err := svc.Export(user.ID, "right-password")
		testutil.AssertNoError(t, err)
		raw, err := json.Marshal(env)
		testutil.AssertNoError(t, err)

		_, err = svc.Import(user.ID, raw, "wrong-password")
		testutil.AssertAppError(t, err, "BACKUP_DECRYPT_FAILED")
	})

	t.Run("truncated_payload_rejected_before_mutation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBackupService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestAnalysis(t, db, user.ID)
		testutil.CreateTestBudget(t, db, user.ID, categorize.CategoryGroceries, 400)

		// A payload carrying only a version decrypts fine but must not be
		// restorable: accepting it would wipe every collection it omits.
		env, err := vault.Encrypt([]byte(`{"version":1}`), "pw123456")
		testutil.AssertNoError(t, err)
		raw, err := json.Marshal(env)
		testutil.AssertNoError(t, err)

		_, err = svc.Import(user.ID, raw, "pw123456")
		testutil.AssertAppError(t, err, "INVALID_BACKUP")

		var count int64
		db.Model(&models.Analysis{}).Where("user_id = ?", user.ID).Count(&count)
		if count != 1 {
			t.Errorf("rejected import must leave analyses untouched, got %d", count)
		}
		db.Model(&models.Budget{}).Where("user_id = ?", user.ID).Count(&count)
		if count != 1 {
			t.Errorf("rejected import must leave budgets untouched, got %d", count)
		}
	})

	t.Run("not_an_envelope", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBackupService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.Import(user.ID, []byte(`{"hello":"world"}`), "pw")
		testutil.AssertAppError(t, err, "INVALID_BACKUP")
	})

	t.Run("failed_import_keeps_existing_data", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBackupService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestAnalysis(t, db, user.ID)

		env, err := svc.Export(user.ID, "right-password")
		testutil.AssertNoError(t, err)
		raw, err := json.Marshal(env)
		testutil.AssertNoError(t, err)

		_, err = svc.Import(user.ID, raw, "wrong-password")
		testutil.AssertAppError(t, err, "BACKUP_DECRYPT_FAILED")

		var count int64
		db.Model(&models.Analysis{}).Where("user_id = ?", user.ID).Count(&count)
		if count != 1 {
			t.Errorf("failed import must leave data untouched, got %d analyses", count)
		}
	})

	t.Run("export_requires_password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBackupService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.Export(user.ID, "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestPreferences(t *testing.T) {
	t.Run("set_and_replace", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPreferenceService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.SetPreference(user.ID, "pie_chart", "enabled")
		testutil.AssertNoError(t, err)
		_, err = svc.SetPreference(user.ID, "pie_chart", "disabled")
		testutil.AssertNoError(t, err)

		prefs, err := svc.GetPreferences(user.ID)
		testutil.AssertNoError(t, err)
		if len(prefs) != 1 || prefs[0].Value != "disabled" {
			t.Errorf("expected single replaced preference, got %+v", prefs)
		}
	})

	t.Run("empty_key_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPreferenceService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.SetPreference(user.ID, "", "v")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}
