package core_test

import (
	"reflect"
	"testing"

	"cyberdl/internal/core"
	"cyberdl/internal/model"
	"cyberdl/internal/testutil"
)

func TestSelection_Select(t *testing.T) {
	t.Run("selecting games category keeps lower facets selectable", func(t *testing.T) {
		var s core.Selection
		s.Select(core.FacetCategory, core.CategoryGames)
		s.Select(core.FacetGame, "GTA V")
		s.Select(core.FacetContentType, core.ContentTypeMods)
		s.Select(core.FacetModType, "Weapons")

		want := core.Selection{Category: "games", Game: "GTA V", ContentType: "mods", ModType: "Weapons"}
		if s != want {
			t.Errorf("selection = %+v, want %+v", s, want)
		}
	})

	t.Run("switching away from games clears game and everything below", func(t *testing.T) {
		s := core.Selection{Category: "games", Game: "GTA V", ContentType: "mods", ModType: "Weapons", Search: "aim"}
		s.Select(core.FacetCategory, "scripts")

		want := core.Selection{Category: "scripts", Search: "aim"}
		if s != want {
			t.Errorf("selection = %+v, want %+v", s, want)
		}
	})

	t.Run("selecting a different game clears content type and sub-types", func(t *testing.T) {
		s := core.Selection{Category: "games", Game: "GTA V", ContentType: "download", DownloadType: "RePack"}
		s.Select(core.FacetGame, "Minecraft")

		want := core.Selection{Category: "games", Game: "Minecraft"}
		if s != want {
			t.Errorf("selection = %+v, want %+v", s, want)
		}
	})

	t.Run("selecting a different content type clears both sub-types", func(t *testing.T) {
		s := core.Selection{Category: "games", Game: "GTA V", ContentType: "mods", ModType: "Weapons"}
		s.Select(core.FacetContentType, "download")

		want := core.Selection{Category: "games", Game: "GTA V", ContentType: "download"}
		if s != want {
			t.Errorf("selection = %+v, want %+v", s, want)
		}
	})

	t.Run("re-selecting the active value deselects it", func(t *testing.T) {
		s := core.Selection{Category: "games", Game: "GTA V", ContentType: "mods", ModType: "Weapons"}
		s.Select(core.FacetModType, "Weapons")
		if s.ModType != "" {
			t.Errorf("ModType = %q, want empty", s.ModType)
		}

		s.Select(core.FacetGame, "GTA V")
		if s.Game != "" || s.ContentType != "" {
			t.Errorf("deselecting game should also clear content type, got %+v", s)
		}
	})

	t.Run("deselecting the games category clears the tree below it", func(t *testing.T) {
		s := core.Selection{Category: "games", Game: "GTA V", ContentType: "mods"}
		s.Select(core.FacetCategory, "games")

		want := core.Selection{}
		if s != want {
			t.Errorf("selection = %+v, want %+v", s, want)
		}
	})

	t.Run("search never cascades", func(t *testing.T) {
		s := core.Selection{Category: "games", Game: "GTA V", ContentType: "mods", ModType: "Skins"}
		s.Select(core.FacetSearch, "graphics")

		want := core.Selection{Category: "games", Game: "GTA V", ContentType: "mods", ModType: "Skins", Search: "graphics"}
		if s != want {
			t.Errorf("selection = %+v, want %+v", s, want)
		}

		s.Select(core.FacetSearch, "")
		if s.Search != "" {
			t.Errorf("Search = %q, want empty", s.Search)
		}
	})
}

func TestMatches(t *testing.T) {
	entry := model.CatalogEntry{
		Name:        "Realistic Graphics Mod",
		Category:    "games",
		Game:        "GTA V",
		ContentType: "mods",
		ModType:     "Textures",
	}

	t.Run("empty selection matches everything", func(t *testing.T) {
		if !core.Matches(entry, core.Selection{}) {
			t.Error("empty selection should match")
		}
	})

	t.Run("search is a case-insensitive substring match on name", func(t *testing.T) {
		if !core.Matches(entry, core.Selection{Search: "GRAPHICS"}) {
			t.Error("uppercase search should match")
		}
		if core.Matches(entry, core.Selection{Search: "shader"}) {
			t.Error("non-matching search should not match")
		}
	})

	t.Run("every active facet must pass", func(t *testing.T) {
		sel := core.Selection{Category: "games", Game: "GTA V", ContentType: "mods", ModType: "Textures"}
		if !core.Matches(entry, sel) {
			t.Error("fully matching selection should match")
		}

		sel.ModType = "Weapons"
		if core.Matches(entry, sel) {
			t.Error("mismatched mod type should not match")
		}
	})

	t.Run("an entry missing a faceted field never matches", func(t *testing.T) {
		bare := model.CatalogEntry{Name: "Loose File", Category: "games"}
		if core.Matches(bare, core.Selection{Category: "games", Game: "GTA V"}) {
			t.Error("entry without a game should not match a game facet")
		}
	})
}

func TestFilter(t *testing.T) {
	entries := []model.CatalogEntry{
		{ID: "official-1", Name: "GTA V RePack", Category: "games", Game: "GTA V", ContentType: "download", DownloadType: "RePack"},
		{ID: "official-2", Name: "Weapon Pack", Category: "games", Game: "GTA V", ContentType: "mods", ModType: "Weapons"},
		{ID: "user-1", Name: "Crosshair Script", Category: "scripts"},
	}

	t.Run("preserves input order", func(t *testing.T) {
		got := core.Filter(entries, core.Selection{Category: "games"})
		if len(got) != 2 || got[0].ID != "official-1" || got[1].ID != "official-2" {
			t.Errorf("Filter() = %v", got)
		}
	})

	t.Run("no match yields an empty list", func(t *testing.T) {
		got := core.Filter(entries, core.Selection{Search: "nonexistent"})
		if len(got) != 0 {
			t.Errorf("Filter() = %v, want empty", got)
		}
	})
}

func TestTaxonomy(t *testing.T) {
	store := testutil.NewTestStore(t)
	tax, err := core.NewTaxonomy(store)
	if err != nil {
		t.Fatalf("NewTaxonomy() error = %v", err)
	}

	t.Run("categories load in definition order", func(t *testing.T) {
		cats := tax.Categories()
		if len(cats) == 0 {
			t.Fatal("no categories loaded")
		}
		if cats[0].ID != "games" {
			t.Errorf("first category = %q, want games", cats[0].ID)
		}
	})

	t.Run("sub-types follow the active content type", func(t *testing.T) {
		var sel core.Selection
		if subs := tax.Subcategories(sel); subs != nil {
			t.Errorf("Subcategories with no type = %v, want nil", subs)
		}

		sel.Select(core.FacetContentType, core.ContentTypeMods)
		want := []string{"Weapons", "Vehicles", "Textures", "Maps", "Skins"}
		if got := tax.Subcategories(sel); !reflect.DeepEqual(got, want) {
			t.Errorf("Subcategories = %v, want %v", got, want)
		}

		sel.Select(core.FacetContentType, core.ContentTypeDownload)
		want = []string{"License", "RePack", "Early Access"}
		if got := tax.Subcategories(sel); !reflect.DeepEqual(got, want) {
			t.Errorf("Subcategories = %v, want %v", got, want)
		}
	})

	t.Run("unknown content type id has no definition", func(t *testing.T) {
		if ct := tax.ContentTypeByID("nope"); ct != nil {
			t.Errorf("ContentTypeByID = %v, want nil", ct)
		}
	})
}
