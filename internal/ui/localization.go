package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyConvertTab        = "convert_tab"
	KeyDownloadTab       = "download_tab"
	KeySourceFolder      = "source_folder"
	KeyDestFolder        = "dest_folder"
	KeyDownloadFolder    = "download_folder"
	KeyBrowse            = "browse"
	KeyScan              = "scan"
	KeyConvert           = "convert"
	KeyDownload          = "download"
	KeyCancel            = "cancel"
	KeyReveal            = "reveal"
	KeyStatusReady       = "status_ready"
	KeyStatusScanning    = "status_scanning"
	KeyEnterURL          = "enter_url"
	KeyInvalidURL        = "invalid_url"
	KeyNoFilesFound      = "no_files_found"
	KeyFilesFound        = "files_found"
	KeySelectFoldersHint = "select_folders_hint"
	KeyAddToQueue        = "add_to_queue"
	KeyQueueHeader       = "queue_header"
	KeyDownloadAll       = "download_all"
	KeyRemoveSelected    = "remove_selected"
	KeyClearQueue        = "clear_queue"
	KeyStatusWaiting     = "status_waiting"
	KeyFetchingInfo      = "fetching_info"
	KeyAlreadyQueued     = "already_queued"
	KeySettings          = "settings"
	KeyBitrateLabel      = "bitrate_label"
	KeyLanguageLabel     = "language_label"
	KeySave              = "save"
	KeySettingsSaved     = "settings_saved"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// T returns the translation for a key in the current language
func (l *Localization) T(key string) string {
	if translations, exists := l.texts[l.currentLanguage]; exists {
		if text, exists := translations[key]; exists {
			return text
		}
	}
	if text, exists := l.texts["en"][key]; exists {
		return text
	}
	return key
}

// initializeTexts fills in the translation tables
func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "Modern Audio Converter",
		KeyConvertTab:        "Batch Convert",
		KeyDownloadTab:       "YouTube Download",
		KeySourceFolder:      "Source Folder",
		KeyDestFolder:        "Destination Folder",
		KeyDownloadFolder:    "Download Folder",
		KeyBrowse:            "Browse",
		KeyScan:              "Scan Files",
		KeyConvert:           "Convert",
		KeyDownload:          "Download",
		KeyCancel:            "Cancel",
		KeyReveal:            "Show in Folder",
		KeyStatusReady:       "Ready",
		KeyStatusScanning:    "Scanning files...",
		KeyEnterURL:          "Enter a YouTube URL",
		KeyInvalidURL:        "Invalid YouTube URL",
		KeyNoFilesFound:      "No supported audio files found",
		KeyFilesFound:        "%d files found",
		KeySelectFoldersHint: "Select source and destination folders",
		KeyAddToQueue:        "Add to Queue",
		KeyQueueHeader:       "Download Queue",
		KeyDownloadAll:       "Download All",
		KeyRemoveSelected:    "Remove Selected",
		KeyClearQueue:        "Clear Queue",
		KeyStatusWaiting:     "Waiting",
		KeyFetchingInfo:      "Fetching info...",
		KeyAlreadyQueued:     "Already in queue",
		KeySettings:          "Settings",
		KeyBitrateLabel:      "MP3 Bitrate:",
		KeyLanguageLabel:     "Language:",
		KeySave:              "Save",
		KeySettingsSaved:     "Settings saved",
	}

	l.texts["tr"] = map[string]string{
		KeyAppTitle:          "Modern Ses Dönüştürücü",
		KeyConvertTab:        "Toplu Dönüştürme",
		KeyDownloadTab:       "YouTube İndirici",
		KeySourceFolder:      "Kaynak Klasör",
		KeyDestFolder:        "Hedef Klasör",
		KeyDownloadFolder:    "İndirme Klasörü",
		KeyBrowse:            "Seç",
		KeyScan:              "Dosyaları Tara",
		KeyConvert:           "Dönüştür",
		KeyDownload:          "İndir",
		KeyCancel:            "İptal",
		KeyReveal:            "Klasörde Göster",
		KeyStatusReady:       "Hazır",
		KeyStatusScanning:    "Dosyalar taranıyor...",
		KeyEnterURL:          "YouTube URL'si girin",
		KeyInvalidURL:        "Geçersiz YouTube URL'si",
		KeyNoFilesFound:      "Desteklenen ses dosyası bulunamadı",
		KeyFilesFound:        "%d dosya bulundu",
		KeySelectFoldersHint: "Kaynak ve hedef klasörlerini seçin",
		KeyAddToQueue:        "Kuyruğa Ekle",
		KeyQueueHeader:       "İndirme Kuyruğu",
		KeyDownloadAll:       "Kuyruğu İndir",
		KeyRemoveSelected:    "Seçileni Kaldır",
		KeyClearQueue:        "Kuyruğu Temizle",
		KeyStatusWaiting:     "Bekliyor",
		KeyFetchingInfo:      "Bilgi alınıyor...",
		KeyAlreadyQueued:     "Zaten kuyrukta",
		KeySettings:          "Ayarlar",
		KeyBitrateLabel:      "MP3 Bit Hızı:",
		KeyLanguageLabel:     "Dil:",
		KeySave:              "Kaydet",
		KeySettingsSaved:     "Ayarlar kaydedildi",
	}
}
