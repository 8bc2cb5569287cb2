package app

import (
	"fmt"
	"log/slog"
	"sync"

	cryptoDomain "github.com/allisson/crypto-api/internal/crypto/domain"
	cryptoHTTP "github.com/allisson/crypto-api/internal/crypto/http"
	cryptoService "github.com/allisson/crypto-api/internal/crypto/service"
	cryptoUseCase "github.com/allisson/crypto-api/internal/crypto/usecase"
)

// cryptoComponents groups the engine dependencies and their initialization flags.
type cryptoComponents struct {
	secretKey     cryptoDomain.SecretKey
	cipher        cryptoService.Cipher
	hasher        *cryptoService.Argon2idHasher
	cryptoUseCase cryptoUseCase.CryptoUseCase
	cryptoHandler *cryptoHTTP.CryptoHandler

	secretKeyInit     sync.Once
	cipherInit        sync.Once
	hasherInit        sync.Once
	cryptoUseCaseInit sync.Once
	cryptoHandlerInit sync.Once
}

// SecretKey returns the engine key decoded from ENCRYPTION_KEY.
func (c *Container) SecretKey() (cryptoDomain.SecretKey, error) {
	c.engine.secretKeyInit.Do(func() {
		key, err := cryptoDomain.ParseSecretKey(c.config.EncryptionKey)
		if err != nil {
			c.setInitError("secretKey", fmt.Errorf("failed to load encryption key: %w", err))
			return
		}
		c.engine.secretKey = key
	})
	if err := c.initError("secretKey"); err != nil {
		return cryptoDomain.SecretKey{}, err
	}
	return c.engine.secretKey, nil
}

// Cipher returns the AES-256-GCM unit bound to the engine key.
func (c *Container) Cipher() (cryptoService.Cipher, error) {
	c.engine.cipherInit.Do(func() {
		cipher, err := c.initCipher()
		if err != nil {
			c.setInitError("cipher", err)
			return
		}
		c.engine.cipher = cipher
	})
	if err := c.initError("cipher"); err != nil {
		return nil, err
	}
	return c.engine.cipher, nil
}

// Hasher returns the Argon2id unit configured with the default cost parameters.
// It needs no key, so the CLI can use it without ENCRYPTION_KEY.
func (c *Container) Hasher() (*cryptoService.Argon2idHasher, error) {
	c.engine.hasherInit.Do(func() {
		hasher, err := c.initHasher()
		if err != nil {
			c.setInitError("hasher", err)
			return
		}
		c.engine.hasher = hasher
	})
	if err := c.initError("hasher"); err != nil {
		return nil, err
	}
	return c.engine.hasher, nil
}

// CryptoUseCase returns the engine, instrumented when metrics are enabled.
func (c *Container) CryptoUseCase() (cryptoUseCase.CryptoUseCase, error) {
	c.engine.cryptoUseCaseInit.Do(func() {
		useCase, err := c.initCryptoUseCase()
		if err != nil {
			c.setInitError("cryptoUseCase", err)
			return
		}
		c.engine.cryptoUseCase = useCase
	})
	if err := c.initError("cryptoUseCase"); err != nil {
		return nil, err
	}
	return c.engine.cryptoUseCase, nil
}

// CryptoHandler returns the HTTP handler for the engine routes.
func (c *Container) CryptoHandler() (*cryptoHTTP.CryptoHandler, error) {
	c.engine.cryptoHandlerInit.Do(func() {
		useCase, err := c.CryptoUseCase()
		if err != nil {
			c.setInitError("cryptoHandler", fmt.Errorf("failed to get crypto use case for crypto handler: %w", err))
			return
		}
		c.engine.cryptoHandler = cryptoHTTP.NewCryptoHandler(useCase, c.Logger())
	})
	if err := c.initError("cryptoHandler"); err != nil {
		return nil, err
	}
	return c.engine.cryptoHandler, nil
}

// HashParams returns the default Argon2id parameters from configuration.
func (c *Container) HashParams() cryptoDomain.HashParams {
	params := cryptoDomain.DefaultHashParams()
	params.Memory = uint32(c.config.Argon2MemoryKiB)
	params.Iterations = uint32(c.config.Argon2Iterations)
	params.Parallelism = uint8(c.config.Argon2Parallelism)
	return params
}

// VerifyCeiling returns the largest Argon2id cost a submitted hash may name.
func (c *Container) VerifyCeiling() cryptoDomain.HashParams {
	return cryptoDomain.HashParams{
		Memory:      uint32(c.config.Argon2MaxVerifyMemoryKiB),
		Iterations:  uint32(c.config.Argon2MaxVerifyIterations),
		Parallelism: uint8(c.config.Argon2MaxVerifyParallelism),
	}
}

// initCipher creates the cipher with the configured nonce window.
func (c *Container) initCipher() (cryptoService.Cipher, error) {
	key, err := c.SecretKey()
	if err != nil {
		return nil, err
	}

	cipher, err := cryptoService.NewAESGCM(key, cryptoService.WithNonceWindow(c.config.NonceWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	return cipher, nil
}

// initHasher creates the hasher with the configured defaults and password cap.
func (c *Container) initHasher() (*cryptoService.Argon2idHasher, error) {
	hasher, err := cryptoService.NewArgon2idHasher(c.HashParams(), c.config.MaxPasswordLength)
	if err != nil {
		return nil, fmt.Errorf("failed to create password hasher: %w", err)
	}
	return hasher, nil
}

// initCryptoUseCase composes the engine and routes its fatal failure to Fatal().
func (c *Container) initCryptoUseCase() (cryptoUseCase.CryptoUseCase, error) {
	cipher, err := c.Cipher()
	if err != nil {
		return nil, fmt.Errorf("failed to get cipher for crypto use case: %w", err)
	}

	hasher, err := c.Hasher()
	if err != nil {
		return nil, fmt.Errorf("failed to get hasher for crypto use case: %w", err)
	}

	useCase, err := cryptoUseCase.NewCryptoUseCase(cipher, hasher, cryptoUseCase.Config{
		MaxPayloadSize: c.config.MaxPayloadSize,
		HashWorkers:    c.config.HashWorkers,
		HashTimeout:    c.config.HashTimeout,
		MaxVerifyCost:  c.VerifyCeiling(),
	}, c.onFatal)
	if err != nil {
		return nil, fmt.Errorf("failed to create crypto use case: %w", err)
	}

	if !c.config.MetricsEnabled {
		return useCase, nil
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for crypto use case: %w", err)
	}
	return cryptoUseCase.NewCryptoUseCaseWithMetrics(useCase, businessMetrics), nil
}

// onFatal records a fatal engine failure and hands it to whoever watches Fatal().
func (c *Container) onFatal(err error) {
	c.Logger().Error("cryptographic engine halted", slog.Any("error", err))

	select {
	case c.fatal <- err:
	default:
	}
}
