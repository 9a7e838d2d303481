package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/ivlev/videoplan/internal/audioplan"
	"github.com/ivlev/videoplan/internal/config"
	"github.com/ivlev/videoplan/internal/element"
	"github.com/ivlev/videoplan/internal/mixer"
	"github.com/ivlev/videoplan/internal/render"
	"github.com/ivlev/videoplan/internal/source"
	"github.com/ivlev/videoplan/internal/system"
	"github.com/ivlev/videoplan/internal/timeline"
)

func main() {
	system.InitResourceLimits()

	dirs := []string{"input/audio", "input/pdf", "output"}
	for _, d := range dirs {
		os.MkdirAll(d, 0755)
	}

	inputPtr := flag.String("input", "", "PDF or image directory (default: newest file in input/pdf/)")
	audioPtr := flag.String("audio", "", "BGM audio file (default: newest file in input/audio/, empty dir = no BGM)")
	pageDurationPtr := flag.Float64("page-duration", 5.0, "Seconds per page/image")
	bgmVolumePtr := flag.Float64("bgm-volume", 0.25, "BGM gain in [0,1]")
	titlePtr := flag.String("title", "", "Optional title overlay shown for the first seconds of the timeline")
	fpsPtr := flag.Int("fps", 30, "FPS")
	widthPtr := flag.Int("width", 1280, "Target canvas width")
	heightPtr := flag.Int("height", 720, "Target canvas height")
	presetPtr := flag.String("preset", "", "Format preset: 16:9, 9:16 (Shorts/TikTok), 4:5 (Instagram)")
	renderPlanPtr := flag.String("render-plan", "", "Render plan output path (default: timestamped in output/)")
	mixPlanPtr := flag.String("mix-plan", "", "Mix plan output path (default: timestamped in output/)")
	filterPtr := flag.String("filter", "", "Optional path for the generated ffmpeg filter_complex text")
	statsPtr := flag.Bool("stats", false, "Print planning statistics")

	flag.Parse()

	cfg := &config.Config{
		Width:        *widthPtr,
		Height:       *heightPtr,
		FPS:          *fpsPtr,
		PageDuration: *pageDurationPtr,
		BGMVolume:    *bgmVolumePtr,
		Workers:      system.WorkerCount(),
		ShowStats:    *statsPtr,
		BuildVersion: "PLANNER-V1.0",
	}

	cfg.Preset = *presetPtr
	cfg.FilterOut = *filterPtr

	switch *presetPtr {
	case "16:9":
		cfg.Width, cfg.Height = 1280, 720
	case "9:16":
		cfg.Width, cfg.Height = 720, 1280
	case "4:5":
		cfg.Width, cfg.Height = 1080, 1350
	}

	inputPath := *inputPtr
	if inputPath == "" {
		latest, err := system.FindLatestPDF("input/pdf")
		if err != nil {
			log.Fatalf("[-] Error: %v. Put a PDF into input/pdf/", err)
		}
		inputPath = latest
		fmt.Printf("[*] Selected input: %s\n", inputPath)
	}
	cfg.InputPath = inputPath

	var src source.Source
	var err error
	if strings.HasSuffix(strings.ToLower(inputPath), ".pdf") {
		src, err = source.NewFitzPDFSource(inputPath)
	} else {
		src, err = source.NewImageSource(inputPath)
	}
	if err != nil {
		log.Fatalf("[-] Source init error: %v", err)
	}
	defer src.Close()

	if src.PageCount() == 0 {
		log.Fatalf("[-] Error: source has no pages or images")
	}

	startTime := time.Now()

	scene, err := source.BuildSlideScene(src, cfg.PageDuration)
	if err != nil {
		log.Fatalf("[-] Scene build error: %v", err)
	}

	if *titlePtr != "" {
		title := element.NewText(*titlePtr, 80).
			SetAlignment(element.AlignCenter)
		title.Position(float64(cfg.Width)/2, 80).
			StartAt(0).
			SetDuration(3)
		if err := scene.Add(title.Entity); err != nil {
			log.Fatalf("[-] Title error: %v", err)
		}
	}

	audioPath := *audioPtr
	if audioPath == "" {
		if latest, err := system.FindLatestAudio("input/audio"); err == nil {
			audioPath = latest
		}
	}
	if audioPath != "" {
		dur, err := system.GetAudioDuration(audioPath)
		if err != nil {
			log.Fatalf("[-] Audio probe error (%s): %v", audioPath, err)
		}
		bgm := element.NewBGM(audioPath, dur).
			SetVolume(cfg.BGMVolume).
			FadeIn(1.0).
			FadeOut(2.0)
		if err := scene.Add(bgm); err != nil {
			log.Fatalf("[-] BGM error: %v", err)
		}
		cfg.AudioPath = audioPath
		fmt.Printf("[*] BGM: %s (%.2fs, looped to scene)\n", audioPath, dur)
	}

	master := timeline.NewMasterTimeline()
	if err := master.Add(scene); err != nil {
		log.Fatalf("[-] Timeline error: %v", err)
	}
	if err := master.Finalize(); err != nil {
		log.Fatalf("[-] Finalize error: %v", err)
	}

	fmt.Println("--- [PROJECT: PLAN COMPILER] ---")
	fmt.Printf("[*] Input: %s | Pages: %d\n", cfg.InputPath, src.PageCount())
	fmt.Printf("[*] Canvas: %dx%d @ %d FPS | Duration: %.2fs | Workers: %d\n",
		cfg.Width, cfg.Height, cfg.FPS, master.TotalDuration(), cfg.Workers)
	fmt.Println("--------------------------------")

	plan, err := render.BuildPlan(master, cfg.FPS)
	if err != nil {
		log.Fatalf("[-] Render plan error: %v", err)
	}
	plan.Width, plan.Height = cfg.Width, cfg.Height

	cfg.RenderPlan = *renderPlanPtr
	if cfg.RenderPlan == "" {
		cfg.RenderPlan = render.GeneratePlanPath("output", "render_plan")
	}
	if err := render.WritePlan(plan, cfg.RenderPlan); err != nil {
		log.Fatalf("[-] Render plan write error: %v", err)
	}
	fmt.Printf("[>] Render plan: %s (%d frames)\n", cfg.RenderPlan, len(plan.Frames))

	directives, err := audioplan.Plan(master)
	if err != nil {
		log.Fatalf("[-] Mix plan error: %v", err)
	}

	cfg.MixPlan = *mixPlanPtr
	if cfg.MixPlan == "" {
		cfg.MixPlan = render.GeneratePlanPath("output", "mix_plan")
	}
	if err := render.WriteMixPlan(directives, cfg.MixPlan); err != nil {
		log.Fatalf("[-] Mix plan write error: %v", err)
	}
	fmt.Printf("[>] Mix plan: %s (%d directives)\n", cfg.MixPlan, len(directives))

	if *filterPtr != "" {
		graph := mixer.BuildFilterGraph(directives)
		if err := os.WriteFile(*filterPtr, []byte(graph), 0644); err != nil {
			log.Fatalf("[-] Filter write error: %v", err)
		}
		fmt.Printf("[>] FFmpeg filter: %s\n", *filterPtr)
	}

	if cfg.ShowStats {
		totalTime := time.Since(startTime)
		fps := float64(len(plan.Frames)) / totalTime.Seconds()
		fmt.Printf(
			"--- [PLANNING REPORT] ---\n"+
				"Build: %s\n"+
				"Total Time: %.2fs\n"+
				"Frames Planned: %d\n"+
				"Directives: %d\n"+
				"Effective FPS: %.2f\n"+
				"-------------------------\n",
			cfg.BuildVersion, totalTime.Seconds(), len(plan.Frames), len(directives), fps,
		)
	}

	fmt.Println("[+++] Done.")
}
