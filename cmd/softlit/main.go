// softlit - software-rasterized model viewer
// Renders a textured mesh in your terminal with no GPU involved: vertex
// transform, perspective divide, barycentric rasterization, tangent-space
// normal mapping, Phong specular, shadow mapping and SSAO, all on the CPU.
//
// Controls:
//
//	Mouse drag  - Orbit the camera (yaw/pitch)
//	Arrow keys  - Orbit the camera
//	+/-         - Zoom in/out
//	S           - Toggle shadow mapping
//	O           - Toggle ambient occlusion
//	X           - Toggle wireframe overlay
//	P           - Save the current frame as PNG
//	R           - Reset the view
//	Esc         - Quit
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"

	"github.com/softlit/softlit/pkg/math3d"
	"github.com/softlit/softlit/pkg/models"
	"github.com/softlit/softlit/pkg/render"
)

const targetFPS = 30

func main() {
	cmd := &cobra.Command{
		Use:   "softlit <assets-dir>",
		Short: "view a model with the softlit software rasterizer",
		Long: "softlit renders a textured triangle mesh in the terminal using a " +
			"from-scratch software rasterizer: no GPU, no graphics API.\n\n" +
			"The assets directory must contain a model (model.glb or model.gltf) " +
			"and may contain diffuse.png, normal.png (tangent-space) and " +
			"specular.png maps.",
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return run(args[0])
		},
		SilenceUsage: true,
	}

	if err := fang.Execute(context.Background(), cmd); err != nil {
		os.Exit(1)
	}
}

// assets holds everything loaded from the assets directory.
type assets struct {
	mesh     *models.Mesh
	diffuse  *render.Texture
	normal   *render.Texture
	specular *render.Texture
}

// findAsset returns the first existing file among names inside dir.
func findAsset(dir string, names ...string) (string, bool) {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// loadAssets reads the mesh and its maps. A missing or unreadable mesh is
// fatal; missing maps fall back to procedural defaults.
func loadAssets(dir string) (*assets, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("assets directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("assets path %s is not a directory", dir)
	}

	modelPath, ok := findAsset(dir, "model.glb", "model.gltf")
	if !ok {
		// Fall back to the first glTF file in the directory
		matches, _ := filepath.Glob(filepath.Join(dir, "*.glb"))
		if len(matches) == 0 {
			matches, _ = filepath.Glob(filepath.Join(dir, "*.gltf"))
		}
		if len(matches) == 0 {
			return nil, errors.New("no model.glb or model.gltf in assets directory")
		}
		modelPath = matches[0]
	}

	mesh, embedded, err := models.LoadGLBWithTexture(modelPath)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	mesh.FitUnitCube()

	a := &assets{mesh: mesh}

	if path, ok := findAsset(dir, "diffuse.png", "diffuse.jpg"); ok {
		a.diffuse, err = render.LoadTexture(path)
		if err != nil {
			return nil, fmt.Errorf("load diffuse map: %w", err)
		}
	} else if embedded != nil {
		a.diffuse = render.TextureFromImage(embedded)
	} else {
		a.diffuse = render.NewCheckerTexture(64, 64, 8, render.RGB(200, 200, 200), render.RGB(100, 100, 100))
	}

	if path, ok := findAsset(dir, "normal.png", "normal_tangent.png"); ok {
		a.normal, err = render.LoadTexture(path)
		if err != nil {
			return nil, fmt.Errorf("load normal map: %w", err)
		}
	} else {
		a.normal = render.NewSolidTexture(render.RGB(128, 128, 255))
	}

	if path, ok := findAsset(dir, "specular.png"); ok {
		a.specular, err = render.LoadTexture(path)
		if err != nil {
			return nil, fmt.Errorf("load specular map: %w", err)
		}
	} else {
		a.specular = render.NewSolidTexture(render.RGB(0, 0, 0))
	}

	return a, nil
}

// orbitAxis tracks one camera orbit angle with spring-decayed velocity.
type orbitAxis struct {
	Position  float64
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64
}

func newOrbitAxis(fps int) orbitAxis {
	return orbitAxis{
		// Critically damped so the orbit glides to a stop without overshoot
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

func (a *orbitAxis) Update() {
	a.Position += a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
}

// orbitState holds the camera orbit with spring physics.
type orbitState struct {
	Yaw, Pitch orbitAxis
	Distance   float64
}

func newOrbitState() *orbitState {
	return &orbitState{
		Yaw:      newOrbitAxis(targetFPS),
		Pitch:    newOrbitAxis(targetFPS),
		Distance: 3,
	}
}

func (o *orbitState) Update() {
	o.Yaw.Update()
	o.Pitch.Update()

	// Keep the eye off the poles so the view basis stays well-defined
	const maxPitch = 1.4
	if o.Pitch.Position > maxPitch {
		o.Pitch.Position = maxPitch
	}
	if o.Pitch.Position < -maxPitch {
		o.Pitch.Position = -maxPitch
	}
}

// Eye returns the camera position on the orbit sphere.
func (o *orbitState) Eye() math3d.Vec3 {
	rot := math3d.RotateY(float32(o.Yaw.Position)).Mul(math3d.RotateX(float32(o.Pitch.Position)))
	return rot.MulVec3Dir(math3d.V3(0, 0, float32(o.Distance)))
}

func run(assetsDir string) error {
	a, err := loadAssets(assetsDir)
	if err != nil {
		return err
	}

	scene := render.NewScene(a.mesh)
	scene.Diffuse = a.diffuse
	scene.NormalMap = a.normal
	scene.SpecularMap = a.specular
	scene.Shadows = true

	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Enable mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1003h")
	fmt.Fprint(os.Stdout, "\x1b[?1006h")

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	orbit := newOrbitState()
	var mouseDown bool
	var lastMouseX, lastMouseY int
	var saveFrame bool

	// Half-block cells give double vertical resolution
	fbWidth, fbHeight := width, height*2

	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				fbWidth, fbHeight = width, height*2

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"), ev.MatchString("ctrl+c"), ev.MatchString("q"):
					cancel()
					return
				case ev.MatchString("left"):
					orbit.Yaw.Velocity -= 0.05
				case ev.MatchString("right"):
					orbit.Yaw.Velocity += 0.05
				case ev.MatchString("up"):
					orbit.Pitch.Velocity -= 0.05
				case ev.MatchString("down"):
					orbit.Pitch.Velocity += 0.05
				case ev.MatchString("+", "="):
					orbit.Distance = max(1.5, orbit.Distance-0.25)
				case ev.MatchString("-", "_"):
					orbit.Distance = min(10, orbit.Distance+0.25)
				case ev.MatchString("s"):
					scene.Shadows = !scene.Shadows
				case ev.MatchString("o"):
					scene.AmbientOcclusion = !scene.AmbientOcclusion
				case ev.MatchString("x"):
					scene.Wireframe = !scene.Wireframe
				case ev.MatchString("p"):
					saveFrame = true
				case ev.MatchString("r"):
					*orbit = *newOrbitState()
				}

			case uv.MouseClickEvent:
				mouseDown = true
				lastMouseX, lastMouseY = ev.X, ev.Y

			case uv.MouseReleaseEvent:
				mouseDown = false

			case uv.MouseMotionEvent:
				if mouseDown {
					dx := ev.X - lastMouseX
					dy := ev.Y - lastMouseY
					orbit.Yaw.Velocity += float64(dx) * 0.01
					orbit.Pitch.Velocity += float64(dy) * 0.02
					lastMouseX, lastMouseY = ev.X, ev.Y
				}

			case uv.MouseWheelEvent:
				switch ev.Button {
				case uv.MouseWheelUp:
					orbit.Distance = max(1.5, orbit.Distance-0.25)
				case uv.MouseWheelDown:
					orbit.Distance = min(10, orbit.Distance+0.25)
				}
			}
		}
	}()

	targetDuration := time.Second / targetFPS
	frameIndex := 0

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		start := time.Now()

		orbit.Update()
		scene.Eye = orbit.Eye()

		fb := scene.Render(fbWidth, fbHeight)

		if saveFrame {
			saveFrame = false
			fb.FlipVertical()
			name := fmt.Sprintf("softlit-%03d.png", frameIndex)
			if err := fb.SavePNG(filepath.Join(assetsDir, name)); err != nil {
				cleanup()
				return fmt.Errorf("save frame: %w", err)
			}
			fb.FlipVertical()
		}
		frameIndex++

		fb.Draw(term, uv.Rect(0, 0, width, height))
		if err := term.Display(); err != nil {
			cleanup()
			return fmt.Errorf("display: %w", err)
		}

		if elapsed := time.Since(start); elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
