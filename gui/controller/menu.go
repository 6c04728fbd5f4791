package controller

// Role names a built-in menu action.
type Role string

const (
	RoleAbout            Role = "about"
	RoleReload           Role = "reload"
	RoleForceReload      Role = "forcereload"
	RoleQuit             Role = "quit"
	RoleMinimize         Role = "minimize"
	RoleToggleFullScreen Role = "togglefullscreen"
	RoleResetZoom        Role = "resetzoom"
	RoleClose            Role = "close"
	RoleToggleDevTools   Role = "toggledevtools"
)

var roleLabels = map[Role]string{
	RoleAbout:            "About",
	RoleReload:           "Reload",
	RoleForceReload:      "Force Reload",
	RoleQuit:             "Quit",
	RoleMinimize:         "Minimize",
	RoleToggleFullScreen: "Toggle Full Screen",
	RoleResetZoom:        "Actual Size",
	RoleClose:            "Close Window",
	RoleToggleDevTools:   "Toggle Developer Tools",
}

// MenuEntry is one item of a menu section. A separator has no role.
type MenuEntry struct {
	Label     string
	Role      Role
	Separator bool
}

// DisplayLabel returns the explicit label or the role's default one.
func (e MenuEntry) DisplayLabel() string {
	if e.Label != "" {
		return e.Label
	}
	if l, ok := roleLabels[e.Role]; ok {
		return l
	}
	return string(e.Role)
}

// MenuSection is a top-level menu.
type MenuSection struct {
	Label string
	Items []MenuEntry
}

func role(r Role) MenuEntry { return MenuEntry{Role: r} }

var separator = MenuEntry{Separator: true}

// BuildMenu describes the application menu for the given mode.
func BuildMenu(m Mode, appName string) []MenuSection {
	var sections []MenuSection

	about := MenuEntry{Label: "About", Role: RoleAbout}

	if m.IsMac() {
		sections = append(sections, MenuSection{Label: appName, Items: []MenuEntry{about}})
	}

	sections = append(sections,
		MenuSection{Label: "File", Items: []MenuEntry{role(RoleReload), role(RoleQuit)}},
		MenuSection{Label: "Window", Items: []MenuEntry{
			role(RoleMinimize),
			role(RoleToggleFullScreen),
			role(RoleResetZoom),
			separator,
			role(RoleClose),
		}},
	)

	if !m.IsMac() {
		sections = append(sections, MenuSection{Label: "Help", Items: []MenuEntry{about}})
	}

	if m.Dev {
		sections = append(sections, MenuSection{Label: "Developer", Items: []MenuEntry{
			role(RoleForceReload),
			separator,
			role(RoleToggleDevTools),
		}})
	}

	return sections
}
