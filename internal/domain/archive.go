package domain

// Reserved entry names inside a .ushay archive.
const (
	MetadataEntryName = "proceso.xml"
	InfoEntryName     = "zip.info"
	CrestEntryName    = "escudo.jpg"
)

// ArchiveEntry is a single named entry read from the embedded archive.
type ArchiveEntry struct {
	Name     string
	RawBytes []byte
}

// ContentsEntry is one row of the contents index: which entries each container holds.
type ContentsEntry struct {
	ContainerFile string `json:"archivo_ushay"`
	EntryName     string `json:"archivo_interno"`
}
