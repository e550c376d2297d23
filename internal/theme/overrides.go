package theme

// swatch is the handful of colors every preset is generated from.
type swatch struct {
	Primary        string
	PrimaryHover   string
	PrimaryPressed string
	Bg             string
	Sider          string
	Card           string
	Border         string
	TextBase       string
}

func (s swatch) fields() map[string]string {
	return map[string]string{
		"primary":         s.Primary,
		"primary_hover":   s.PrimaryHover,
		"primary_pressed": s.PrimaryPressed,
		"bg":              s.Bg,
		"sider":           s.Sider,
		"card":            s.Card,
		"border":          s.Border,
		"text_base":       s.TextBase,
	}
}

// Overrides is the per-component style bundle handed to the rendering layer.
type Overrides struct {
	Common       CommonOverrides       `json:"common" yaml:"common"`
	Layout       LayoutOverrides       `json:"Layout" yaml:"Layout"`
	Card         CardOverrides         `json:"Card" yaml:"Card"`
	Table        TableOverrides        `json:"Table" yaml:"Table"`
	Button       ButtonOverrides       `json:"Button" yaml:"Button"`
	Input        InputOverrides        `json:"Input" yaml:"Input"`
	Switch       SwitchOverrides       `json:"Switch" yaml:"Switch"`
	Slider       SliderOverrides       `json:"Slider" yaml:"Slider"`
	Spin         ColorOverride         `json:"Spin" yaml:"Spin"`
	LoadingBar   LoadingBarOverrides   `json:"LoadingBar" yaml:"LoadingBar"`
	Tabs         TabsOverrides         `json:"Tabs" yaml:"Tabs"`
	Menu         MenuOverrides         `json:"Menu" yaml:"Menu"`
	Notification ColorOverride         `json:"Notification" yaml:"Notification"`
	AutoComplete AutoCompleteOverrides `json:"AutoComplete" yaml:"AutoComplete"`
}

type CommonOverrides struct {
	PrimaryColor        string `json:"primaryColor" yaml:"primaryColor"`
	PrimaryColorHover   string `json:"primaryColorHover" yaml:"primaryColorHover"`
	PrimaryColorPressed string `json:"primaryColorPressed" yaml:"primaryColorPressed"`
	PrimaryColorSuppl   string `json:"primaryColorSuppl" yaml:"primaryColorSuppl"`
	CardColor           string `json:"cardColor" yaml:"cardColor"`
	BorderRadius        string `json:"borderRadius" yaml:"borderRadius"`
	BorderRadiusSmall   string `json:"borderRadiusSmall" yaml:"borderRadiusSmall"`
	BorderRadiusMedium  string `json:"borderRadiusMedium" yaml:"borderRadiusMedium"`
	BorderRadiusLarge   string `json:"borderRadiusLarge" yaml:"borderRadiusLarge"`
	TextColorBase       string `json:"textColorBase,omitempty" yaml:"textColorBase,omitempty"`
	BodyColor           string `json:"bodyColor,omitempty" yaml:"bodyColor,omitempty"`
}

type LayoutOverrides struct {
	Color            string `json:"color" yaml:"color"`
	SiderColor       string `json:"siderColor" yaml:"siderColor"`
	SiderBorderColor string `json:"siderBorderColor" yaml:"siderBorderColor"`
}

type CardOverrides struct {
	Color       string `json:"color" yaml:"color"`
	BorderColor string `json:"borderColor" yaml:"borderColor"`
}

type TableOverrides struct {
	TdColor string `json:"tdColor" yaml:"tdColor"`
	ThColor string `json:"thColor" yaml:"thColor"`
}

type ButtonOverrides struct {
	ColorPrimary        string `json:"colorPrimary" yaml:"colorPrimary"`
	ColorPrimaryHover   string `json:"colorPrimaryHover" yaml:"colorPrimaryHover"`
	ColorPrimaryPressed string `json:"colorPrimaryPressed" yaml:"colorPrimaryPressed"`
	BorderFocus         string `json:"borderFocus" yaml:"borderFocus"`
}

type InputOverrides struct {
	CaretColor     string `json:"caretColor" yaml:"caretColor"`
	BorderHover    string `json:"borderHover" yaml:"borderHover"`
	BorderFocus    string `json:"borderFocus" yaml:"borderFocus"`
	BoxShadowFocus string `json:"boxShadowFocus" yaml:"boxShadowFocus"`
}

type SwitchOverrides struct {
	RailColorActive string `json:"railColorActive" yaml:"railColorActive"`
	LoadingColor    string `json:"loadingColor" yaml:"loadingColor"`
}

type SliderOverrides struct {
	FillColor      string `json:"fillColor" yaml:"fillColor"`
	FillColorHover string `json:"fillColorHover" yaml:"fillColorHover"`
}

type ColorOverride struct {
	Color string `json:"color" yaml:"color"`
}

type LoadingBarOverrides struct {
	ColorLoading string `json:"colorLoading" yaml:"colorLoading"`
}

type TabsOverrides struct {
	TabTextColorActiveLine string `json:"tabTextColorActiveLine" yaml:"tabTextColorActiveLine"`
	BarColor               string `json:"barColor" yaml:"barColor"`
}

type MenuOverrides struct {
	ItemHeight               string `json:"itemHeight" yaml:"itemHeight"`
	ItemTextColorActive      string `json:"itemTextColorActive" yaml:"itemTextColorActive"`
	ItemIconColorActive      string `json:"itemIconColorActive" yaml:"itemIconColorActive"`
	ItemTextColorChildActive string `json:"itemTextColorChildActive" yaml:"itemTextColorChildActive"`
	ItemIconColorChildActive string `json:"itemIconColorChildActive" yaml:"itemIconColorChildActive"`
}

type AutoCompleteOverrides struct {
	Peers struct {
		InternalSelectMenu struct {
			Height string `json:"height" yaml:"height"`
			Color  string `json:"color" yaml:"color"`
		} `json:"InternalSelectMenu" yaml:"InternalSelectMenu"`
	} `json:"peers" yaml:"peers"`
}

func newOverrides(s swatch) Overrides {
	o := Overrides{
		Common: CommonOverrides{
			PrimaryColor:        s.Primary,
			PrimaryColorHover:   s.PrimaryHover,
			PrimaryColorPressed: s.PrimaryPressed,
			PrimaryColorSuppl:   s.PrimaryHover,
			CardColor:           s.Sider,
			BorderRadius:        "20px",
			BorderRadiusSmall:   "10px",
			BorderRadiusMedium:  "20px",
			BorderRadiusLarge:   "24px",
		},
		Layout: LayoutOverrides{Color: s.Bg, SiderColor: s.Sider, SiderBorderColor: s.Border},
		Card:   CardOverrides{Color: s.Card, BorderColor: s.Border},
		Table:  TableOverrides{TdColor: s.Card, ThColor: s.Sider},
		Button: ButtonOverrides{
			ColorPrimary:        s.Primary,
			ColorPrimaryHover:   s.PrimaryHover,
			ColorPrimaryPressed: s.PrimaryPressed,
			BorderFocus:         "1px solid " + s.Primary,
		},
		Input: InputOverrides{
			CaretColor:     s.Primary,
			BorderHover:    "1px solid " + s.PrimaryHover,
			BorderFocus:    "1px solid " + s.Primary,
			BoxShadowFocus: "0 0 0 2px " + s.Primary + "33",
		},
		Switch:     SwitchOverrides{RailColorActive: s.Primary, LoadingColor: s.Primary},
		Slider:     SliderOverrides{FillColor: s.Primary, FillColorHover: s.PrimaryHover},
		Spin:       ColorOverride{Color: s.Primary},
		LoadingBar: LoadingBarOverrides{ColorLoading: s.Primary},
		Tabs:       TabsOverrides{TabTextColorActiveLine: s.Primary, BarColor: s.Primary},
		Menu: MenuOverrides{
			ItemHeight:               "32px",
			ItemTextColorActive:      s.Primary,
			ItemIconColorActive:      s.Primary,
			ItemTextColorChildActive: s.Primary,
			ItemIconColorChildActive: s.Primary,
		},
		Notification: ColorOverride{Color: s.Card},
	}
	o.AutoComplete.Peers.InternalSelectMenu.Height = "500px"
	o.AutoComplete.Peers.InternalSelectMenu.Color = s.Card

	if s.TextBase != "" {
		o.Common.TextColorBase = s.TextBase
		o.Common.BodyColor = s.Bg
	}
	return o
}
