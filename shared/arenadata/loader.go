package arenadata

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lafriks/go-tiled"
)

// Load parses a TMX file and returns the arena geometry (wall rectangles and
// fighter spawn points). It takes an fs.FS so callers can pass embed.FS
// (client) or os.DirFS (server).
func Load(fsys fs.FS, tmxPath string) (*ArenaData, error) {
	arenaMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	data := &ArenaData{
		Width:  arenaMap.Width * arenaMap.TileWidth,
		Height: arenaMap.Height * arenaMap.TileHeight,
	}

	for _, og := range arenaMap.ObjectGroups {
		switch og.Name {
		case "Walls":
			for _, o := range og.Objects {
				if o.Width <= 0 || o.Height <= 0 {
					continue
				}
				data.Walls = append(data.Walls, WallRect{
					X: o.X,
					Y: o.Y,
					W: o.Width,
					H: o.Height,
				})
			}
		case "FighterSpawn":
			for _, o := range og.Objects {
				data.SpawnPoints = append(data.SpawnPoints, SpawnPoint{
					X:     o.X,
					Y:     o.Y,
					Index: o.Properties.GetInt("spawnIndex"),
				})
			}
		}
	}

	if len(data.SpawnPoints) == 0 {
		return nil, fmt.Errorf("arena %s has no FighterSpawn objects", tmxPath)
	}

	// Sort spawns by index for consistent assignment.
	sort.Slice(data.SpawnPoints, func(i, j int) bool {
		return data.SpawnPoints[i].Index < data.SpawnPoints[j].Index
	})

	return data, nil
}

// LoadAll discovers all .tmx files in arenasDir within fsys, loads each, and
// returns a map keyed by stem name plus a sorted list of names.
func LoadAll(fsys fs.FS, arenasDir string) (map[string]*ArenaData, []string, error) {
	pattern := arenasDir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s", arenasDir)
	}

	arenas := make(map[string]*ArenaData, len(matches))
	names := make([]string, 0, len(matches))
	for _, match := range matches {
		name := strings.TrimSuffix(filepath.Base(match), ".tmx")
		data, err := Load(fsys, match)
		if err != nil {
			return nil, nil, err
		}
		arenas[name] = data
		names = append(names, name)
	}
	sort.Strings(names)

	return arenas, names, nil
}
