package config

// Storage backends.
const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

const (
	defaultConfigPath         = "~/.config/ledger/config.toml"
	defaultDataDir            = "~/.local/share/ledger"
	defaultOutputDir          = "~/Documents/labels"
	defaultLogDir             = "~/.local/share/ledger/logs"
	defaultAPIBind            = "127.0.0.1:7420"
	defaultProductPrefix      = "Aodefa"
	defaultTitle              = "Aodefa Logistics International Freight"
	defaultQRURL              = "https://adf.eagur.com"
	defaultCaption            = "Scan QR code or visit {url} to fill form"
	defaultBarcodePrefix      = "6820253043"
	defaultAddressSeparator   = ", "
	defaultPageWidthMM        = 80
	defaultPageHeightMM       = 200
	defaultMarginMM           = 5
	defaultQRErrorCorrection  = "M"
	defaultQRScale            = 2
	defaultRenderWorkers      = 1
	defaultMinioBucket        = "labels"
	defaultPresignExpiryHours = 24
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:   defaultDataDir,
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
			APIBind:   defaultAPIBind,
		},
		Label: Label{
			ProductPrefix:    defaultProductPrefix,
			Title:            defaultTitle,
			QRURL:            defaultQRURL,
			Caption:          defaultCaption,
			BarcodePrefix:    defaultBarcodePrefix,
			AddressSeparator: defaultAddressSeparator,
		},
		Render: Render{
			PageWidthMM:       defaultPageWidthMM,
			PageHeightMM:      defaultPageHeightMM,
			MarginMM:          defaultMarginMM,
			QRErrorCorrection: defaultQRErrorCorrection,
			QRScale:           defaultQRScale,
			Workers:           defaultRenderWorkers,
		},
		Storage: Storage{
			Backend: StorageLocal,
			Minio: Minio{
				Bucket:             defaultMinioBucket,
				PresignExpiryHours: defaultPresignExpiryHours,
			},
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
