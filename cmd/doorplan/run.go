package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/archfloor/doorplan"
	"github.com/archfloor/doorplan/config"
	"github.com/archfloor/doorplan/door"
	"github.com/archfloor/doorplan/exchange"
	"github.com/archfloor/doorplan/halfedge"
	"github.com/archfloor/doorplan/optimizer"
	"github.com/archfloor/doorplan/room"
)

func runCmd() *cobra.Command {
	var configPath string
	var caseName string
	var outPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the door placement optimizer for one case of a config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCase(configPath, caseName, outPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to the TOML config file (required)")
	cmd.Flags().StringVar(&caseName, "case", "", "file_name of the case to run; defaults to the first case")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "path to write the optimized OBJ to (required)")
	cmd.MarkFlagRequired("config")
	cmd.MarkFlagRequired("out")

	return cmd
}

func runCase(configPath, caseName, outPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	c, err := selectCase(cfg, caseName)
	if err != nil {
		return err
	}

	objFile, err := os.Open(c.ObjPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", c.ObjPath, err)
	}
	defer objFile.Close()

	exMesh, err := exchange.NewReader(objFile).Read()
	if err != nil {
		return fmt.Errorf("reading %s: %w", c.ObjPath, err)
	}

	mesh, err := halfedge.NewMesh(exMesh.Points, exMesh.Triangles, exMesh.FixedEdges)
	if err != nil {
		return fmt.Errorf("building mesh: %w", err)
	}
	rooms := room.NewModel(mesh)
	sys := door.NewSystem(mesh, rooms)

	doors, err := c.ResolveDoors()
	if err != nil {
		return fmt.Errorf("resolving doors: %w", err)
	}
	for _, spec := range doors {
		sys.Add(door.NewDoor(spec.RoomA, spec.RoomB, spec.Length))
	}

	front := door.NewDoor(-1, -1, 0)
	front.NeedOptimization = false
	front.BindEdge = c.FrontDoorEdge()
	front.Ratio = c.FrontDoorRatio()
	sys.Add(front)

	if err := sys.ActivateAll(); err != nil {
		return fmt.Errorf("activating doors: %w", err)
	}

	rng := rand.New(rand.NewSource(cfg.Optimizer.RandomSeed))
	samples := optimizer.SamplePoints(mesh, cfg.Optimizer.SampleSize, rng)

	opt := optimizer.New(mesh, sys, samples, cfg.Optimizer.Temperature, cfg.Optimizer.Sigma, rng)
	opt.Init()
	log.Printf("case %s: starting score %.4f", c.FileName, opt.BestScore())

	if err := opt.Run(cfg.Optimizer.Iterations); err != nil {
		return fmt.Errorf("running optimizer: %w", err)
	}
	log.Printf("case %s: finished score %.4f (from %.4f)", c.FileName, opt.BestScore(), opt.PrevScore())

	for _, d := range sys.Doors() {
		if !d.NeedOptimization {
			continue
		}
		pos := sys.Position(d)
		log.Printf("door %d-%d: edge=%d ratio=%.4f pos=(%.4f, %.4f)",
			d.RoomA, d.RoomB, d.BindEdge, d.Ratio, pos.X(), pos.Y())
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outPath, err)
	}
	defer out.Close()

	result := exportMesh(mesh, rooms)
	roomOf := func(face int) string {
		return result.FaceGroups[face]
	}
	if err := exchange.NewWriter(out).Write(result, roomOf); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}

	return nil
}

func selectCase(cfg *config.Config, name string) (config.Case, error) {
	if len(cfg.Cases) == 0 {
		return config.Case{}, fmt.Errorf("config has no cases")
	}
	if name == "" {
		return cfg.Cases[0], nil
	}
	for _, c := range cfg.Cases {
		if c.FileName == name {
			return c, nil
		}
	}
	return config.Case{}, fmt.Errorf("no case named %q", name)
}

// exportMesh walks a mesh's live vertices/half-edges/faces (door
// activation grows these arenas past the OBJ-loaded Mesh's original
// indices) and remaps them into a fresh, contiguous exchange.Mesh.
func exportMesh(mesh *halfedge.Mesh, rooms *room.Model) *exchange.Mesh {
	vertexIndex := make(map[int]int, mesh.NumVertices())
	var points []geom.Point
	for v := 0; v < mesh.NumVertices(); v++ {
		if mesh.VertexRemoved(v) {
			continue
		}
		vertexIndex[v] = len(points)
		points = append(points, mesh.Vertex(v).Point)
	}

	var fixedEdges [][2]int
	for e := 0; e < mesh.NumHalfEdges(); e++ {
		if mesh.HalfEdgeRemoved(e) {
			continue
		}
		h := mesh.HalfEdge(e)
		if !h.IsBlocked {
			continue
		}
		if h.Twin >= 0 && h.Twin < e {
			continue // interior constraint: emit once, from the lower-id side
		}
		fixedEdges = append(fixedEdges, [2]int{vertexIndex[h.Origin], vertexIndex[mesh.To(e)]})
	}

	var triangles [][3]int
	var groups []string
	for f := 0; f < mesh.NumFaces(); f++ {
		if mesh.FaceRemoved(f) {
			continue
		}
		fv := mesh.FaceVertices(f)
		triangles = append(triangles, [3]int{vertexIndex[fv[0]], vertexIndex[fv[1]], vertexIndex[fv[2]]})
		id := rooms.RoomOf(f)
		if id < 0 {
			groups = append(groups, "")
		} else {
			groups = append(groups, fmt.Sprintf("room-%d", id))
		}
	}

	return &exchange.Mesh{
		Points:     points,
		FixedEdges: fixedEdges,
		Triangles:  triangles,
		FaceGroups: groups,
	}
}
