package view

// Paths used by the rendered pages
const (
	HomePath             = "/"
	LoginPath            = "/login"
	AssetsPath           = "/assets"
	CollectionsFragment  = "/fragments/collections"
	DefaultDocumentTitle = "NFT Marketplace"
)

// Layout is the shared chrome of every page
type Layout struct {
	Title     string
	RequestID string
}

// Header renders a logo link and a login link
type Header struct {
	LogoHref  string
	LogoSrc   string
	LoginHref string
	LoginText string
}

// CollectionsSection is the data of the collections fragment
type CollectionsSection struct {
	Src   string //Fragment url, set while loading so the page can fetch it
	State State
}

// Home is the hero section followed by the collections
type Home struct {
	Title       string
	Tagline     string
	Collections CollectionsSection
}

// LandingPage stacks the header above the home section
type LandingPage struct {
	Layout Layout
	Header Header
	Home   Home
}

func NewHeader() Header {
	return Header{
		LogoHref:  HomePath,
		LogoSrc:   AssetsPath + "/images/logo.svg",
		LoginHref: LoginPath,
		LoginText: "LOG IN",
	}
}

// NewLandingPage returns the landing page with the collections section still loading
func NewLandingPage(requestID string) LandingPage {
	return LandingPage{
		Layout: Layout{Title: DefaultDocumentTitle, RequestID: requestID},
		Header: NewHeader(),
		Home: Home{
			Title:   "Welcome to NFT Marketplace",
			Tagline: "Discover, collect, and trade unique digital assets",
			Collections: CollectionsSection{
				Src:   CollectionsFragment,
				State: LoadingState(),
			},
		},
	}
}

// NewCollectionsSection wraps a settled state for the fragment template
func NewCollectionsSection(state State) CollectionsSection {
	return CollectionsSection{State: state}
}

// NotFoundPage is rendered for every path that is not routed
type NotFoundPage struct {
	Layout Layout
	Header Header
	Path   string
}

func NewNotFoundPage(requestID, path string) NotFoundPage {
	return NotFoundPage{
		Layout: Layout{Title: "Page not found | " + DefaultDocumentTitle, RequestID: requestID},
		Header: NewHeader(),
		Path:   path,
	}
}
