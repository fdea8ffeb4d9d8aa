package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/airstack/space-optimizer/internal/planner"
)

// mmScale converts bay meters to OpenSCAD millimeters.
const mmScale = 1000.0

// scadColors is the cargo box color cycle, RGBA vectors in OpenSCAD syntax.
var scadColors = []string{
	"[1, 0, 0, 0.8]",   // red
	"[0, 1, 0, 0.8]",   // green
	"[0, 0, 1, 0.8]",   // blue
	"[1, 1, 0, 0.8]",   // yellow
	"[1, 0, 1, 0.8]",   // magenta
	"[0, 1, 1, 0.8]",   // cyan
	"[1, 0.5, 0, 0.8]", // orange
	"[0.5, 0, 1, 0.8]", // purple
}

// WriteOpenSCAD renders the load plan as an OpenSCAD scene: a semi-cylindrical
// cargo bay with one labelled box per packed item and an info panel beside it.
func WriteOpenSCAD(w io.Writer, plan planner.PackingResult) error {
	bay := plan.Bay
	if bay.MaxLength <= 0 || bay.MaxWidth <= 0 || bay.MaxHeight <= 0 {
		return fmt.Errorf("bay dimensions must be positive")
	}

	var b strings.Builder
	stats := plan.Stats

	b.WriteString("// Military Cargo Loading Manifest\n")
	b.WriteString("// Generated by Space Optimizer\n\n")

	fmt.Fprintf(&b, `// === CARGO STATISTICS ===
// Total Weight: %.1f kg / %.0f kg
// Weight Utilization: %.2f%%
// Volume Utilization: %.2f%%
// Items Packed: %d
// Items Unpacked: %d

`, stats.TotalWeight, stats.MaxWeight, stats.WeightUtilization, stats.VolumeUtilization, stats.ItemsPacked, stats.ItemsUnpacked)

	fmt.Fprintf(&b, `// === CARGO BAY DIMENSIONS (mm) ===
bay_length = %g;
bay_width = %g;
bay_height = %g;
wall_thickness = 20;

// Text settings
text_size = 50;
text_depth = 2;

$fn = 50; // Smooth curves

`, bay.MaxLength*mmScale, bay.MaxWidth*mmScale, bay.MaxHeight*mmScale)

	b.WriteString(`// === SEMI-CYLINDRICAL CARGO BAY ===
module cargo_bay() {
    color([0.3, 0.3, 0.3, 0.3]) {
        difference() {
            // Outer semi-cylinder
            translate([bay_length/2, bay_width/2, 0])
                rotate([0, 90, 0])
                    intersection() {
                        cylinder(h=bay_length, r=bay_width/2, center=true);
                        cube([bay_width, bay_width, bay_length + 10], center=true);
                    }

            // Inner hollow
            translate([bay_length/2, bay_width/2, wall_thickness])
                rotate([0, 90, 0])
                    intersection() {
                        cylinder(h=bay_length + 10, r=bay_width/2 - wall_thickness, center=true);
                        cube([bay_width, bay_width, bay_length + 20], center=true);
                    }

            // Front opening
            translate([-5, bay_width/2, bay_height/2])
                cube([20, bay_width + 10, bay_height + 10], center=true);
        }

        // Floor
        translate([bay_length/2, bay_width/2, -wall_thickness/2])
            cube([bay_length, bay_width, wall_thickness], center=true);
    }
}

`)

	b.WriteString(`// === CARGO BOX MODULE ===
module cargo_box(x, y, z, l, w, h, color_vec, label_text, weight_text) {
    translate([x, y, z]) {
        // Box
        color(color_vec)
            cube([l, w, h], center=true);

        // Label on top
        color([1, 1, 1])
            translate([0, 0, h/2 + text_depth/2])
                linear_extrude(height=text_depth)
                    text(label_text, size=text_size, halign="center", valign="center", font="Liberation Sans:style=Bold");

        // Weight label on side
        color([1, 1, 0])
            translate([0, -w/2 - text_depth/2, 0])
                rotate([90, 0, 0])
                    linear_extrude(height=text_depth)
                        text(weight_text, size=text_size * 0.7, halign="center", valign="center", font="Liberation Sans:style=Bold");
    }
}

`)

	b.WriteString("// === MAIN ASSEMBLY ===\ncargo_bay();\n\n")

	for idx, item := range plan.Packed {
		color := scadColors[idx%len(scadColors)]
		fmt.Fprintf(&b, `// Item %d: %s (Priority: %d)
cargo_box(%g, %g, %g, %g, %g, %g, %s, "ID%d", "%gkg");

`,
			item.ID, item.ItemType, item.Priority,
			item.Position.X*mmScale, item.Position.Y*mmScale, item.Position.Z*mmScale,
			item.Length*mmScale, item.Width*mmScale, item.Height*mmScale,
			color, item.ID, item.Weight)
	}

	fmt.Fprintf(&b, `
// === INFO PANEL ===
color([0.2, 0.2, 0.2, 0.9])
    translate([bay_length + 500, bay_width/2, bay_height/2])
        cube([800, bay_width * 1.5, bay_height * 1.2], center=true);

color([1, 1, 1])
    translate([bay_length + 500, bay_width/2, bay_height/2 + 300])
        linear_extrude(height=5)
            text("CARGO MANIFEST", size=80, halign="center", valign="center", font="Liberation Sans:style=Bold");

color([0.8, 0.8, 0.8]) {
    translate([bay_length + 500, bay_width/2, bay_height/2 + 150])
        linear_extrude(height=5)
            text("Weight: %.0f/%.0f kg", size=50, halign="center", valign="center");

    translate([bay_length + 500, bay_width/2, bay_height/2 + 50])
        linear_extrude(height=5)
            text("Util: %.1f%%", size=50, halign="center", valign="center");

    translate([bay_length + 500, bay_width/2, bay_height/2 - 50])
        linear_extrude(height=5)
            text("Packed: %d", size=50, halign="center", valign="center");

    translate([bay_length + 500, bay_width/2, bay_height/2 - 150])
        linear_extrude(height=5)
            text("Unpacked: %d", size=50, halign="center", valign="center");
}
`, stats.TotalWeight, stats.MaxWeight, stats.WeightUtilization, stats.ItemsPacked, stats.ItemsUnpacked)

	_, err := io.WriteString(w, b.String())
	return err
}
